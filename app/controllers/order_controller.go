package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PageFox/app/models"
	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/usercontext"
)

// HandleListOrders lists orders across all projects of the current user.
// GET /api/v1/orders
func HandleListOrders(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	projects, err := repos.Project.GetByUserID(usercontext.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not load projects",
		})
	}

	projectIDs := make([]uint, 0, len(projects))
	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
	}
	if len(projectIDs) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"orders": []models.Order{}})
	}

	orders, err := repos.Order.GetByProjectIDs(c.UserContext(), projectIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not load orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"orders": orders})
}

// HandleUpdateOrderStatus sets the status of an order. Unrecognized status
// values are rejected, transitions between valid statuses are unrestricted.
// PUT /api/v1/orders/:id/status
func HandleUpdateOrderStatus(c *fiber.Ctx) error {
	order, errResp := loadOwnOrder(c)
	if errResp != nil {
		return errResp(c)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "malformed payload",
		})
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": err.Error(),
		})
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Order.UpdateStatus(c.UserContext(), order.ID, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not update order",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// HandleDeleteOrder removes an order. Only cancelled orders may be deleted.
// DELETE /api/v1/orders/:id
func HandleDeleteOrder(c *fiber.Ctx) error {
	order, errResp := loadOwnOrder(c)
	if errResp != nil {
		return errResp(c)
	}

	if !order.CanDelete() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "conflict",
			"message": "only cancelled orders can be deleted",
		})
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Order.Delete(c.UserContext(), order.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not delete order",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// loadOwnOrder resolves the :id param to an order owned by the current user.
// The second return value is a non-nil responder when access fails.
func loadOwnOrder(c *fiber.Ctx) (*models.Order, func(*fiber.Ctx) error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "bad_request",
				"message": "invalid order id",
			})
		}
	}

	repos := repository.GetGlobalRepositories()
	order, err := repos.Order.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "unknown order",
			})
		}
	}

	project, err := repos.Project.GetByID(c.UserContext(), order.ProjectID)
	if err != nil || (project.UserID != usercontext.GetUserID(c) && !usercontext.IsAdmin(c)) {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "not your order",
			})
		}
	}

	return order, nil
}
