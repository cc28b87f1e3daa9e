package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/analytics"
	"github.com/ManuelReschke/PageFox/internal/pkg/usercontext"
)

var analyticsAggregator *analytics.Aggregator

// InitializeAnalyticsController wires the aggregator with repositories
func InitializeAnalyticsController() {
	repos := repository.GetGlobalRepositories()
	analyticsAggregator = analytics.NewAggregator(repos.Visit, repos.Conversion, repos.Order)
}

// HandleGetAnalytics returns the analytics snapshot for the current user's
// projects, optionally narrowed to a single project via ?project=<uuid>.
// GET /api/v1/analytics
func HandleGetAnalytics(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalRepositories()

	var projectIDs []uint
	if projectUUID := c.Query("project"); projectUUID != "" {
		project, err := repos.Project.GetByUUID(c.UserContext(), projectUUID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "unknown project",
			})
		}
		if project.UserID != userID && !usercontext.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "not your project",
			})
		}
		projectIDs = []uint{project.ID}
	} else {
		projects, err := repos.Project.GetByUserID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "internal",
				"message": "could not load projects",
			})
		}
		for _, project := range projects {
			projectIDs = append(projectIDs, project.ID)
		}
	}

	scope := c.Query("project")
	if snapshot := analytics.CachedSnapshot(userID, scope); snapshot != nil {
		return c.Status(fiber.StatusOK).JSON(snapshot)
	}

	snapshot, err := analyticsAggregator.Aggregate(c.UserContext(), projectIDs, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not aggregate analytics",
		})
	}
	analytics.StoreSnapshot(userID, scope, snapshot)

	return c.Status(fiber.StatusOK).JSON(snapshot)
}

// HandleListCustomers returns the customer list derived from the order
// history of the current user's projects, biggest spender first.
// GET /api/v1/customers
func HandleListCustomers(c *fiber.Ctx) error {
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

	customers, err := analyticsAggregator.Customers(c.UserContext(), projectIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not aggregate customers",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"customers": customers})
}
