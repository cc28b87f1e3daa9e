package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PageFox/app/models"
	"github.com/ManuelReschke/PageFox/app/repository"
	metrics "github.com/ManuelReschke/PageFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/PageFox/internal/pkg/tracking"
)

const (
	EventTypeVisit      = "visit"
	EventTypeHeartbeat  = "heartbeat"
	EventTypeConversion = "conversion"
)

// TrackRequest is the payload sent by the tracking script embedded in hosted
// pages: once on load (visit), every 60 seconds and on visibility change
// (heartbeat), and on qualifying button clicks (conversion). SessionID is
// accepted for forward compatibility but the dedup key is the client IP.
type TrackRequest struct {
	ProjectUUID   string `json:"project" validate:"required,uuid"`
	EventType     string `json:"event_type" validate:"required,oneof=visit heartbeat conversion"`
	TimeSpent     int    `json:"time_spent" validate:"min=0"`
	City          string `json:"city" validate:"max=100"`
	Country       string `json:"country" validate:"max=100"`
	SessionID     string `json:"session_id" validate:"max=100"`
	ButtonLabel   string `json:"button_label" validate:"max=255"`
	CustomerName  string `json:"customer_name" validate:"max=150"`
	CustomerPhone string `json:"customer_phone" validate:"max=50"`
	CustomerCity  string `json:"customer_city" validate:"max=100"`
}

var (
	trackTracker  *tracking.Tracker
	trackValidate = validator.New()
)

// InitializeTrackController wires the tracker with repositories
func InitializeTrackController() {
	repos := repository.GetGlobalRepositories()
	trackTracker = tracking.NewTracker(repos.Visit, repos.Project)
}

// HandleTrackEvent ingests one tracking event from a public page.
// POST /api/v1/track
func HandleTrackEvent(c *fiber.Ctx) error {
	var req TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "malformed payload",
		})
	}
	if err := trackValidate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": err.Error(),
		})
	}

	// Anonymous path: bound the project lookup like every other store
	// round-trip on this endpoint.
	lookupCtx, cancel := context.WithTimeout(c.UserContext(), tracking.StoreTimeout)
	defer cancel()

	repos := repository.GetGlobalRepositories()
	project, err := repos.Project.GetByUUID(lookupCtx, req.ProjectUUID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "dropped"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "unknown project",
		})
	}

	clientIP := GetClientIP(c)
	userAgent := c.Get(fiber.HeaderUserAgent)

	switch req.EventType {
	case EventTypeConversion:
		return handleConversion(c, project, &req, clientIP, userAgent)
	default:
		isInitial := req.EventType == EventTypeVisit
		err := trackTracker.RecordEvent(c.UserContext(), project.ID, clientIP, userAgent, req.City, req.Country, req.TimeSpent, isInitial)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			// Fail-safe for slow stores on the public path: the event is
			// dropped and the page keeps working.
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "dropped"})
		case errors.Is(err, tracking.ErrProjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "unknown project",
			})
		case err != nil:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "store_unavailable",
				"message": "event not recorded, retry later",
			})
		}

		if isInitial {
			if err := metrics.AddProjectView(project.ID); err != nil {
				log.Warnf("[Track] view counter increment failed: %v", err)
			}
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "recorded"})
	}
}

// handleConversion appends a conversion click and, when the click carries
// customer-identifying fields, creates an order with the project's product
// snapshot plus a new-order notification for the owner.
func handleConversion(c *fiber.Ctx, project *models.Project, req *TrackRequest, clientIP, userAgent string) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), tracking.StoreTimeout)
	defer cancel()
	repos := repository.GetGlobalRepositories()

	conversion := &models.Conversion{
		ProjectID:   project.ID,
		ButtonLabel: req.ButtonLabel,
		IPAddress:   clientIP,
		UserAgent:   userAgent,
	}
	if err := repos.Conversion.Create(ctx, conversion); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "store_unavailable",
			"message": "event not recorded, retry later",
		})
	}

	if req.CustomerName == "" && req.CustomerPhone == "" && req.CustomerCity == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "recorded"})
	}

	order := &models.Order{
		ProjectID:     project.ID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerCity:  req.CustomerCity,
		ProductName:   project.ProductName,
		ProductPrice:  project.ProductPrice,
		Status:        models.OrderStatusProcessing,
	}
	if err := repos.Order.Create(ctx, order); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "store_unavailable",
			"message": "order not recorded, retry later",
		})
	}

	if _, err := repos.Notification.CreateIfAbsent(ctx, &models.Notification{
		UserID:    project.UserID,
		Type:      models.NotificationTypeNewOrder,
		Title:     "New order",
		Message:   fmt.Sprintf("New order for %q on page %q.", order.ProductName, project.Name),
		RelatedID: order.ID,
	}); err != nil {
		log.Warnf("[Track] new-order notification failed for order %d: %v", order.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":   "recorded",
		"order_id": order.ID,
	})
}
