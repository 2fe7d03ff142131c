package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// NeedHandler handles HTTP requests for needs
type NeedHandler struct {
	needs *services.Need
}

// NewNeedHandler creates a new instance of NeedHandler
func NewNeedHandler(needs *services.Need) *NeedHandler {
	return &NeedHandler{
		needs: needs,
	}
}

// CreateNeed handles creating a need
func (h *NeedHandler) CreateNeed(c *fiber.Ctx) error {
	var req types.NeedCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	need := req.ToModel()
	if need.OwnerID == nil {
		need.OwnerID = actingUserID(c)
	}
	if err := h.needs.Create(c.Context(), need); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgNeedCreateFailed))
	}

	return c.Status(fiber.StatusCreated).JSON(types.MessageResponse{
		Message: "Need created",
		Data:    need,
	})
}

// GetNeed handles retrieving a need by ID
func (h *NeedHandler) GetNeed(c *fiber.Ctx) error {
	needID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	need, err := h.needs.Get(c.Context(), needID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgNeedNotFound))
	}
	return c.JSON(need)
}

// ListNeeds handles listing needs with pagination
func (h *NeedHandler) ListNeeds(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	needs, err := h.needs.List(c.Context(), getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgNeedListFailed))
	}
	return c.JSON(needs)
}

// UpdateNeed handles partially updating a need. Every update appends a
// trace row; a validation flip to ToDo may auto-create a task.
func (h *NeedHandler) UpdateNeed(c *fiber.Ctx) error {
	needID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	var req types.NeedUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	need, err := h.needs.Update(c.Context(), needID, actingUserID(c), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgNeedNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgNeedUpdateFailed))
	}
	return c.JSON(need)
}

// DeleteNeed handles deleting a need. Deletion is refused with a business
// rule error while the need is in progress.
func (h *NeedHandler) DeleteNeed(c *fiber.Ctx) error {
	needID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	if err := h.needs.Delete(c.Context(), needID); err != nil {
		if errors.Is(err, services.ErrNeedInProgress) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrBusinessRule(err.Error()))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgNeedNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgNeedDeleteFailed))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTraces handles retrieving the audit history of a need
func (h *NeedHandler) ListTraces(c *fiber.Ctx) error {
	needID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	traces, err := h.needs.Traces(c.Context(), needID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgNeedNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgTracesFailed))
	}
	return c.JSON(traces)
}
