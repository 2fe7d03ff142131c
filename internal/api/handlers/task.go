package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// TaskHandler handles HTTP requests for tasks, links, attachments and the
// board projections
type TaskHandler struct {
	tasks       *services.Task
	links       *services.Link
	board       *services.Board
	attachments *services.Attachment
}

// NewTaskHandler creates a new instance of TaskHandler
func NewTaskHandler(tasks *services.Task, links *services.Link, board *services.Board, attachments *services.Attachment) *TaskHandler {
	return &TaskHandler{
		tasks:       tasks,
		links:       links,
		board:       board,
		attachments: attachments,
	}
}

// CreateTasks handles task creation. The body is either a single task
// object or {"tasks": [...]} for bulk creation.
func (h *TaskHandler) CreateTasks(c *fiber.Ctx) error {
	var bulk types.BulkTaskCreateRequest
	if err := c.BodyParser(&bulk); err == nil && len(bulk.Tasks) > 0 {
		return h.createBulk(c, bulk)
	}

	var req types.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	task := req.ToModel()
	if task.OwnerID == nil {
		task.OwnerID = actingUserID(c)
	}
	if err := h.tasks.Create(c.Context(), task); err != nil {
		return h.taskWriteError(c, err, ErrMsgTaskCreateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(types.MessageResponse{
		Message: "Task created",
		Data:    task,
	})
}

func (h *TaskHandler) createBulk(c *fiber.Ctx, bulk types.BulkTaskCreateRequest) error {
	tasks := make([]*models.Task, 0, len(bulk.Tasks))
	for _, req := range bulk.Tasks {
		if err := req.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
		}
		task := req.ToModel()
		if task.OwnerID == nil {
			task.OwnerID = actingUserID(c)
		}
		tasks = append(tasks, task)
	}
	if err := h.tasks.CreateBatch(c.Context(), tasks); err != nil {
		return h.taskWriteError(c, err, ErrMsgTaskCreateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(types.MessageResponse{
		Message: "Tasks created",
		Data:    tasks,
	})
}

// GetTask handles retrieving a task by ID
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	taskID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	task, err := h.tasks.Get(c.Context(), taskID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgTaskNotFound))
	}
	return c.JSON(task)
}

// ListTasks handles listing tasks with optional project filter and pagination
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)
	opts.ProjectID = projectFilter(c)
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
		}
		opts.Status = &status
	}

	tasks, err := h.tasks.List(c.Context(), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgTaskListFailed))
	}
	return c.JSON(tasks)
}

// UpdateTask handles partially updating a task
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	var req types.TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	task, err := h.tasks.Update(c.Context(), taskID, req)
	if err != nil {
		return h.taskWriteError(c, err, ErrMsgTaskUpdateFailed)
	}
	return c.JSON(task)
}

// DeleteTask handles deleting a task. Deletion is refused with a business
// rule error while the task is in progress.
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	if err := h.tasks.Delete(c.Context(), taskID); err != nil {
		if errors.Is(err, services.ErrTaskInProgress) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrBusinessRule(err.Error()))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgTaskNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgTaskDeleteFailed))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetChildren handles retrieving the subtree below a task
func (h *TaskHandler) GetChildren(c *fiber.Ctx) error {
	taskID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	children, err := h.tasks.Children(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgTaskNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgChildrenFailed))
	}
	return c.JSON(children)
}

// CreateLink handles linking a task to another
func (h *TaskHandler) CreateLink(c *fiber.Ctx) error {
	taskID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	var req types.LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgLinkFieldsReqd))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	link, err := h.links.Create(c.Context(), taskID, *req.Target, models.LinkType(req.Type))
	if err != nil {
		if services.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgTaskNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgLinkCreateFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// UploadAttachment handles uploading a file to a task. The file arrives as
// the multipart field "file".
func (h *TaskHandler) UploadAttachment(c *fiber.Ctx) error {
	taskID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgFileRequired))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgFileRequired))
	}
	defer func() { _ = src.Close() }()

	attachment, err := h.attachments.Upload(c.Context(), taskID, fileHeader.Filename, src, actingUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgTaskNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgUploadFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(attachment)
}

// Kanban handles the kanban board projection
func (h *TaskHandler) Kanban(c *fiber.Ctx) error {
	board, err := h.board.Kanban(c.Context(), projectFilter(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgKanbanFailed))
	}
	return c.JSON(board)
}

// Gantt handles the gantt projection
func (h *TaskHandler) Gantt(c *fiber.Ctx) error {
	rows, err := h.board.Gantt(c.Context(), projectFilter(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgGanttFailed))
	}
	return c.JSON(rows)
}

// taskWriteError maps task write failures onto the right status code
func (h *TaskHandler) taskWriteError(c *fiber.Ctx, err error, fallback string) error {
	if services.IsValidationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgTaskNotFound))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(fallback))
}
