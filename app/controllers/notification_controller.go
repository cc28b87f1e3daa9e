package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/usercontext"
)

const notificationPageSize = 50

// HandleListNotifications returns the current user's notifications plus the
// unread count. GET /api/v1/notifications
func HandleListNotifications(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalRepositories()

	offset := 0
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil && page > 1 {
		offset = (page - 1) * notificationPageSize
	}

	notifications, err := repos.Notification.GetByUserID(c.UserContext(), userID, offset, notificationPageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not load notifications",
		})
	}

	unread, err := repos.Notification.CountUnread(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not count notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// HandleMarkNotificationRead marks one notification as read, scoped to its
// owner. PUT /api/v1/notifications/:id/read
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid notification id",
		})
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Notification.MarkRead(c.UserContext(), uint(id), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not update notification",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// HandleMarkAllNotificationsRead marks every notification of the current user
// as read. PUT /api/v1/notifications/read-all
func HandleMarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalRepositories()

	if err := repos.Notification.MarkAllRead(c.UserContext(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "could not update notifications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
