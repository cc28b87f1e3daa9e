package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/PageFox/app/repository"
	"github.com/ManuelReschke/PageFox/internal/pkg/cache"
	"github.com/ManuelReschke/PageFox/internal/pkg/database"
	"github.com/ManuelReschke/PageFox/internal/pkg/env"
	"github.com/ManuelReschke/PageFox/internal/pkg/lifecycle"
	"github.com/ManuelReschke/PageFox/internal/pkg/router"
	"github.com/ManuelReschke/PageFox/internal/pkg/scheduler"
	"github.com/ManuelReschke/PageFox/internal/pkg/tracking"
)

func main() {
	app := NewApplication()

	// graceful shutdown: stop background workers before the listener closes
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		scheduler.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10 MiB, page payloads stay small
	})
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	// BACKGROUND TASKS
	tracker := tracking.NewTracker(repos.Visit, repos.Project)
	notifier := lifecycle.NewNotifier(repos.Project, repos.Notification)
	scheduler.Initialize(tracker, notifier)
	scheduler.GetManager().Start()

	return app
}
