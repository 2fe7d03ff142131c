package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projects *services.Project
}

// NewProjectHandler creates a new instance of ProjectHandler
func NewProjectHandler(projects *services.Project) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
	}
}

// CreateProject handles creating a project
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req types.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	project := req.ToModel()
	if project.OwnerID == nil {
		project.OwnerID = actingUserID(c)
	}
	if err := h.projects.Create(c.Context(), project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgProjCreateFailed))
	}

	return c.Status(fiber.StatusCreated).JSON(types.MessageResponse{
		Message: "Project created",
		Data:    project,
	})
}

// GetProject handles retrieving a project by ID
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	project, err := h.projects.Get(c.Context(), projectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgProjNotFound))
	}
	return c.JSON(project)
}

// GetProjectByCode handles retrieving a project by its unique code
func (h *ProjectHandler) GetProjectByCode(c *fiber.Ctx) error {
	project, err := h.projects.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgProjNotFound))
	}
	return c.JSON(project)
}

// AddProjectMember handles adding a user to a project's membership
func (h *ProjectHandler) AddProjectMember(c *fiber.Ctx) error {
	projectID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	var req types.ProjectMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	member := req.ToModel(projectID)
	if err := h.projects.AddMember(c.Context(), member); err != nil {
		if services.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgProjNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgMemberAddFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(types.MessageResponse{
		Message: "Member added",
		Data:    member,
	})
}

// ListProjects handles listing projects with pagination
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	projects, err := h.projects.List(c.Context(), getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgProjListFailed))
	}
	return c.JSON(projects)
}

// DeleteProject handles deleting a project and its tasks
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	projectID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	if err := h.projects.Delete(c.Context(), projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgProjNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgProjDeleteFailed))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
