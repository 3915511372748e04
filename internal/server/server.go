package server

import (
	"time"

	"github.com/flowbaker/alloybridge/internal/controllers"
	"github.com/flowbaker/alloybridge/internal/middlewares"
	"github.com/flowbaker/alloybridge/internal/version"
	"github.com/flowbaker/alloybridge/pkg/clients/bridge"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
)

// RoutePrefixes lists where the function routes are mounted. The second keeps
// links from the hosted deployment working.
var RoutePrefixes = []string{"/api", "/.netlify/functions"}

type HTTPServerDependencies struct {
	BoardsController  *controllers.BoardsController
	ItemsController   *controllers.ItemsController
	TasksController   *controllers.TasksController
	AuthController    *controllers.AuthController
	OAuthController   *controllers.OAuthController
	SessionController *controllers.SessionController
}

func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      version.ServiceName,
		ErrorHandler: controllers.ErrorHandler,
	})

	router.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))
	router.Use(logger.New())
	router.Use(middlewares.CORSMiddleware())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(bridge.HealthResponse{
			Status:    "healthy",
			Service:   version.ServiceName,
			Version:   version.GetVersion(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	for _, prefix := range RoutePrefixes {
		functions := router.Group(prefix)

		functions.Get("/monday-boards", deps.BoardsController.ListBoards)
		functions.Post("/monday-boards", deps.BoardsController.CreateBoard)
		functions.Put("/monday-boards", deps.BoardsController.UpdateBoard)
		functions.Delete("/monday-boards", deps.BoardsController.DeleteBoard)
		functions.All("/monday-boards", controllers.MethodNotAllowed)

		functions.Get("/monday-items", deps.ItemsController.ListItems)
		functions.Post("/monday-items", deps.ItemsController.CreateItem)
		functions.Put("/monday-items", deps.ItemsController.UpdateItem)
		functions.Delete("/monday-items", deps.ItemsController.DeleteItem)
		functions.All("/monday-items", controllers.MethodNotAllowed)

		functions.Get("/zoho-tasks", deps.TasksController.ListTasks)
		functions.Post("/zoho-tasks", deps.TasksController.CreateTask)
		functions.Put("/zoho-tasks", deps.TasksController.UpdateTask)
		functions.Delete("/zoho-tasks", deps.TasksController.DeleteTask)
		functions.All("/zoho-tasks", controllers.MethodNotAllowed)

		functions.Get("/monday-oauth-init", deps.OAuthController.InitMonday)
		functions.All("/monday-oauth-init", controllers.MethodNotAllowed)

		functions.Get("/monday-oauth-callback", deps.OAuthController.CallbackMonday)
		functions.All("/monday-oauth-callback", controllers.MethodNotAllowed)

		functions.Get("/runalloy-auth", deps.AuthController.HandleAuth)
		functions.All("/runalloy-auth", controllers.MethodNotAllowed)

		functions.Get("/oauth-session", deps.SessionController.GetSession)
		functions.All("/oauth-session", controllers.MethodNotAllowed)
	}

	return router
}
