package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/PageFox/app/controllers"
	"github.com/ManuelReschke/PageFox/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public ingestion endpoint hit by the tracking script on hosted pages.
	v1.Post("/track", controllers.HandleTrackEvent)

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", middleware.RequireAPISessionAuth, controllers.HandleLogout)

	// Owner dashboard routes
	v1.Get("/analytics", middleware.RequireAPISessionAuth, controllers.HandleGetAnalytics)
	v1.Get("/customers", middleware.RequireAPISessionAuth, controllers.HandleListCustomers)

	projects := v1.Group("/projects", middleware.RequireAPISessionAuth)
	projects.Post("/", controllers.HandleCreateProject)
	projects.Get("/", controllers.HandleListProjects)
	projects.Put("/:uuid", controllers.HandleUpdateProject)

	orders := v1.Group("/orders", middleware.RequireAPISessionAuth)
	orders.Get("/", controllers.HandleListOrders)
	orders.Put("/:id/status", controllers.HandleUpdateOrderStatus)
	orders.Delete("/:id", controllers.HandleDeleteOrder)

	notifications := v1.Group("/notifications", middleware.RequireAPISessionAuth)
	notifications.Get("/", controllers.HandleListNotifications)
	notifications.Put("/:id/read", controllers.HandleMarkNotificationRead)
	notifications.Put("/read-all", controllers.HandleMarkAllNotificationsRead)

	// Admin
	v1.Post("/lifecycle/run", middleware.RequireAPIAdminAuth, controllers.HandleLifecycleRun)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
