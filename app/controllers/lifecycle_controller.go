package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PageFox/internal/pkg/lifecycle"
)

var lifecycleNotifier *lifecycle.Notifier

// InitializeLifecycleController wires the notifier used by the admin run endpoint.
func InitializeLifecycleController(notifier *lifecycle.Notifier) {
	lifecycleNotifier = notifier
}

// HandleLifecycleRun triggers an expiration evaluation over all hosted pages.
// Admin only. The scheduler runs the same evaluation hourly; this endpoint
// exists so operators can force a pass without waiting for the next tick.
// POST /api/v1/lifecycle/run
func HandleLifecycleRun(c *fiber.Ctx) error {
	result, err := lifecycleNotifier.EvaluateExpirations(c.Context(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal",
			"message": "lifecycle evaluation failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
