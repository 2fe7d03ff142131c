// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/taskflow-dev/taskflow/internal/api/handlers"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIPrefix is the prefix for all API endpoints
	APIPrefix = "/api"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Task routes
	ListTasks            = "ListTasks"
	GetKanban            = "GetKanban"
	GetGantt             = "GetGantt"
	GetTaskChildren      = "GetTaskChildren"
	GetTask              = "GetTask"
	CreateTasks          = "CreateTasks"
	CreateTaskLink       = "CreateTaskLink"
	UploadTaskAttachment = "UploadTaskAttachment"
	UpdateTask           = "UpdateTask"
	DeleteTask           = "DeleteTask"

	// Need routes
	ListNeeds     = "ListNeeds"
	GetNeedTraces = "GetNeedTraces"
	GetNeed       = "GetNeed"
	CreateNeed    = "CreateNeed"
	UpdateNeed    = "UpdateNeed"
	DeleteNeed    = "DeleteNeed"

	// Project routes
	ListProjects     = "ListProjects"
	GetProjectByCode = "GetProjectByCode"
	GetProject       = "GetProject"
	CreateProject    = "CreateProject"
	AddProjectMember = "AddProjectMember"
	DeleteProject    = "DeleteProject"

	// User routes
	GetUsers    = "GetUsers"
	GetUserByID = "GetUserByID"
	CreateUser  = "CreateUser"
)

// RegisterRoutes configures all the API routes
//
// NOTE: route ordering is important because routes will try and match in
// the order they are registered. The fixed-path routes (kanban, gantt,
// code lookup) must be registered before the /:id routes, otherwise fiber
// interprets the slug as an ID.
func RegisterRoutes(
	app *fiber.App,
	taskHandler *handlers.TaskHandler,
	needHandler *handlers.NeedHandler,
	projectHandler *handlers.ProjectHandler,
	userHandler *handlers.UserHandler,
) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	api := app.Group(APIPrefix)

	// Task endpoints
	tasks := api.Group("/tasks")
	tasks.Get("/", taskHandler.ListTasks).Name(ListTasks)
	tasks.Get("/kanban", taskHandler.Kanban).Name(GetKanban)
	tasks.Get("/gantt", taskHandler.Gantt).Name(GetGantt)
	tasks.Get("/:id/children", taskHandler.GetChildren).Name(GetTaskChildren)
	tasks.Get("/:id", taskHandler.GetTask).Name(GetTask)
	tasks.Post("/", taskHandler.CreateTasks).Name(CreateTasks)
	tasks.Post("/:id/link", taskHandler.CreateLink).Name(CreateTaskLink)
	tasks.Post("/:id/upload", taskHandler.UploadAttachment).Name(UploadTaskAttachment)
	tasks.Patch("/:id", taskHandler.UpdateTask).Name(UpdateTask)
	tasks.Delete("/:id", taskHandler.DeleteTask).Name(DeleteTask)

	// Need endpoints
	needs := api.Group("/needs")
	needs.Get("/", needHandler.ListNeeds).Name(ListNeeds)
	needs.Get("/:id/traces", needHandler.ListTraces).Name(GetNeedTraces)
	needs.Get("/:id", needHandler.GetNeed).Name(GetNeed)
	needs.Post("/", needHandler.CreateNeed).Name(CreateNeed)
	needs.Patch("/:id", needHandler.UpdateNeed).Name(UpdateNeed)
	needs.Delete("/:id", needHandler.DeleteNeed).Name(DeleteNeed)

	// Project endpoints
	projects := api.Group("/projects")
	projects.Get("/", projectHandler.ListProjects).Name(ListProjects)
	projects.Get("/code/:code", projectHandler.GetProjectByCode).Name(GetProjectByCode)
	projects.Get("/:id", projectHandler.GetProject).Name(GetProject)
	projects.Post("/", projectHandler.CreateProject).Name(CreateProject)
	projects.Post("/:id/members", projectHandler.AddProjectMember).Name(AddProjectMember)
	projects.Delete("/:id", projectHandler.DeleteProject).Name(DeleteProject)

	// User endpoints
	users := api.Group("/users")
	users.Get("/", userHandler.GetUsers).Name(GetUsers)
	users.Get("/:id", userHandler.GetUserByID).Name(GetUserByID)
	users.Post("/", userHandler.CreateUser).Name(CreateUser)
}
