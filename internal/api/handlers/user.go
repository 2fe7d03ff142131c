package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	users *services.User
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(users *services.User) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

// CreateUser handles creating a user
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req types.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(err.Error()))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}
	if err := h.users.Create(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgCreateUserFailed))
	}

	return c.Status(fiber.StatusCreated).JSON(types.MessageResponse{
		Message: "User created",
		Data:    user,
	})
}

// GetUserByID handles retrieving a user by ID
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(ErrMsgInvalidID))
	}

	user, err := h.users.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(ErrMsgUserNotFound))
	}
	return c.JSON(user)
}

// GetUsers handles listing users with pagination
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	users, err := h.users.List(c.Context(), getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(ErrMsgGetUsersFailed))
	}
	return c.JSON(users)
}
