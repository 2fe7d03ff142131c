// Package app assembles the fiber application from its services and routes
package app

import (
	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
	"github.com/taskflow-dev/taskflow/internal/api/routes"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// Options configures the application
type Options struct {
	// StorageDir is the root directory for uploaded attachment files
	StorageDir string

	// DisableStartupMessage silences fiber's banner, used by tests
	DisableStartupMessage bool
}

// New wires repositories, services and handlers around the given database
// handle and returns the fiber app
func New(db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: opts.DisableStartupMessage,
	})

	app.Use(middleware.Logger())

	// Repositories
	taskRepo := repos.NewTaskRepository(db)
	linkRepo := repos.NewTaskLinkRepository(db)
	attachmentRepo := repos.NewAttachmentRepository(db)
	needRepo := repos.NewNeedRepository(db)
	traceRepo := repos.NewNeedTraceRepository(db)
	projectRepo := repos.NewProjectRepository(db)
	userRepo := repos.NewUserRepository(db)

	// Services
	taskService := services.NewTaskService(taskRepo)
	linkService := services.NewLinkService(linkRepo, taskRepo)
	boardService := services.NewBoardService(taskRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo, opts.StorageDir)
	needService := services.NewNeedService(db, needRepo, traceRepo, taskRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo)
	userService := services.NewUserService(userRepo)

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, linkService, boardService, attachmentService)
	needHandler := handlers.NewNeedHandler(needService)
	projectHandler := handlers.NewProjectHandler(projectService)
	userHandler := handlers.NewUserHandler(userService)

	routes.RegisterRoutes(app, taskHandler, needHandler, projectHandler, userHandler)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(types.ErrServer(err.Error()))
}
