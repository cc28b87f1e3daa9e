package router

import (
	"github.com/ManuelReschke/PageFox/app/controllers"
	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/lifecycle"
	"github.com/ManuelReschke/PageFox/internal/pkg/middleware"
	"github.com/ManuelReschke/PageFox/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire controllers with repositories
	controllers.InitializeTrackController()
	controllers.InitializeAnalyticsController()

	repos := repository.GetGlobalRepositories()
	controllers.InitializeLifecycleController(lifecycle.NewNotifier(repos.Project, repos.Notification))

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Published page display. This is the surface visitors hit; everything
	// else lives under /api/v1.
	app.Get("/p/:slug", controllers.HandleServePage)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
