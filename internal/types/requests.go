// Package types contains the request and response schemas for the API.
// Payloads are validated here before they reach the services.
package types

import (
	"fmt"
	"time"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// TaskCreateRequest defines the payload for creating a task
type TaskCreateRequest struct {
	Title         string     `json:"title"`
	Status        string     `json:"status,omitempty"`
	Type          string     `json:"type,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	Module        string     `json:"module,omitempty"`
	TargetVersion string     `json:"target_version,omitempty"`
	OwnerID       *uint      `json:"owner_id,omitempty"`
	ReporterID    *uint      `json:"reporter_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Progress      *int       `json:"progress,omitempty"`
	ParentID      *uint      `json:"parent_id,omitempty"`
	ProjectID     *uint      `json:"project_id,omitempty"`
}

// Validate validates the task creation payload
func (r TaskCreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Status != "" {
		if _, err := models.ParseTaskStatus(r.Status); err != nil {
			return err
		}
	}
	if r.Type != "" {
		if _, err := models.ParseTaskType(r.Type); err != nil {
			return err
		}
	}
	if r.Priority != "" {
		if _, err := models.ParseTaskPriority(r.Priority); err != nil {
			return err
		}
	}
	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// ToModel converts the request into a task entity
func (r TaskCreateRequest) ToModel() *models.Task {
	task := &models.Task{
		Title:         r.Title,
		Status:        models.TaskStatus(r.Status),
		Type:          models.TaskType(r.Type),
		Priority:      models.TaskPriority(r.Priority),
		Module:        r.Module,
		TargetVersion: r.TargetVersion,
		OwnerID:       r.OwnerID,
		ReporterID:    r.ReporterID,
		StartDate:     r.StartDate,
		DueDate:       r.DueDate,
		ParentID:      r.ParentID,
		ProjectID:     r.ProjectID,
	}
	if r.Progress != nil {
		task.Progress = *r.Progress
	}
	return task
}

// BulkTaskCreateRequest defines the payload for creating multiple tasks at once
type BulkTaskCreateRequest struct {
	Tasks []TaskCreateRequest `json:"tasks"`
}

// TaskUpdateRequest defines the payload for partially updating a task.
// Nil fields are left untouched.
type TaskUpdateRequest struct {
	Title         *string    `json:"title,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Type          *string    `json:"type,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Module        *string    `json:"module,omitempty"`
	TargetVersion *string    `json:"target_version,omitempty"`
	OwnerID       *uint      `json:"owner_id,omitempty"`
	ReporterID    *uint      `json:"reporter_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Progress      *int       `json:"progress,omitempty"`
	ParentID      *uint      `json:"parent_id,omitempty"`
	ProjectID     *uint      `json:"project_id,omitempty"`
}

// Validate validates the task update payload
func (r TaskUpdateRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if r.Status != nil {
		if _, err := models.ParseTaskStatus(*r.Status); err != nil {
			return err
		}
	}
	if r.Type != nil {
		if _, err := models.ParseTaskType(*r.Type); err != nil {
			return err
		}
	}
	if r.Priority != nil {
		if _, err := models.ParseTaskPriority(*r.Priority); err != nil {
			return err
		}
	}
	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// LinkRequest defines the payload for linking two tasks
type LinkRequest struct {
	Target *uint  `json:"target"`
	Type   string `json:"type"`
}

// Validate validates the link payload
func (r LinkRequest) Validate() error {
	if r.Target == nil || r.Type == "" {
		return fmt.Errorf("target and type are required")
	}
	if _, err := models.ParseLinkType(r.Type); err != nil {
		return err
	}
	return nil
}

// NeedCreateRequest defines the payload for creating a need
type NeedCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	IsValidated bool   `json:"is_validated,omitempty"`
	OwnerID     *uint  `json:"owner_id,omitempty"`
}

// Validate validates the need creation payload
func (r NeedCreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Status != "" {
		if _, err := models.ParseTaskStatus(r.Status); err != nil {
			return err
		}
	}
	return nil
}

// ToModel converts the request into a need entity
func (r NeedCreateRequest) ToModel() *models.Need {
	return &models.Need{
		Title:       r.Title,
		Description: r.Description,
		Status:      models.TaskStatus(r.Status),
		IsValidated: r.IsValidated,
		OwnerID:     r.OwnerID,
	}
}

// NeedUpdateRequest defines the payload for partially updating a need.
// Nil fields are left untouched.
type NeedUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	IsValidated *bool   `json:"is_validated,omitempty"`
	OwnerID     *uint   `json:"owner_id,omitempty"`
}

// Validate validates the need update payload
func (r NeedUpdateRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if r.Status != nil {
		if _, err := models.ParseTaskStatus(*r.Status); err != nil {
			return err
		}
	}
	return nil
}

// ProjectCreateRequest defines the payload for creating a project
type ProjectCreateRequest struct {
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	OwnerID     *uint      `json:"owner_id,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate validates the project creation payload
func (r ProjectCreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Code == "" {
		return fmt.Errorf("code is required")
	}
	return nil
}

// ToModel converts the request into a project entity
func (r ProjectCreateRequest) ToModel() *models.Project {
	return &models.Project{
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		OwnerID:     r.OwnerID,
		StartDate:   r.StartDate,
		DueDate:     r.DueDate,
	}
}

// ProjectMemberRequest defines the payload for adding a user to a project
type ProjectMemberRequest struct {
	UserID *uint  `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// Validate validates the membership payload
func (r ProjectMemberRequest) Validate() error {
	if r.UserID == nil {
		return fmt.Errorf("user_id is required")
	}
	if r.Role != "" {
		if _, err := models.ParseProjectRole(r.Role); err != nil {
			return err
		}
	}
	return nil
}

// ToModel converts the request into a membership entity for the project
func (r ProjectMemberRequest) ToModel(projectID uint) *models.ProjectMember {
	return &models.ProjectMember{
		ProjectID: projectID,
		UserID:    *r.UserID,
		Role:      models.ProjectRole(r.Role),
	}
}

// UserCreateRequest defines the payload for creating a user
type UserCreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Validate validates the user creation payload
func (r UserCreateRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
