package handlers

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// HeaderUserID carries the acting user for a request. Auth mechanics live
// in front of this API; an absent or unparsable header means anonymous.
const HeaderUserID = "X-User-ID"

// actingUserID extracts the acting user from the request, nil when anonymous
func actingUserID(c *fiber.Ctx) *uint {
	raw := c.Get(HeaderUserID)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	userID := uint(id)
	return &userID
}

// parseID parses the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// projectFilter parses the optional ?project= query parameter
func projectFilter(c *fiber.Ctx) *uint {
	raw := c.Query("project")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	projectID := uint(id)
	return &projectID
}

// getPaginationOptions builds list options for a 1-based page number
func getPaginationOptions(page int) *models.ListOptions {
	if page < 1 {
		page = 1
	}
	return &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: (page - 1) * models.DefaultLimit,
	}
}
