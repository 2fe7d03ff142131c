package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProjectRole represents the role of a member within a project
type ProjectRole string

// Project role constants
const (
	ProjectRoleViewer     ProjectRole = "viewer"
	ProjectRoleDeveloper  ProjectRole = "developer"
	ProjectRoleMaintainer ProjectRole = "maintainer"
	ProjectRoleOwner      ProjectRole = "owner"
)

// ParseProjectRole converts a string to a ProjectRole
func ParseProjectRole(str string) (ProjectRole, error) {
	switch str {
	case string(ProjectRoleViewer), string(ProjectRoleDeveloper),
		string(ProjectRoleMaintainer), string(ProjectRoleOwner):
		return ProjectRole(str), nil
	default:
		return "", fmt.Errorf("invalid project role: %s", str)
	}
}

// Project groups tasks under a unique code. Deleting a project removes its
// tasks; tasks that are merely unlinked survive.
type Project struct {
	gorm.Model
	Name        string          `json:"name" gorm:"not null; index"`
	Code        string          `json:"code" gorm:"not null; unique"`
	Description string          `json:"description" gorm:"type:text"`
	Color       string          `json:"color" gorm:"default:#3B82F6"`
	Icon        string          `json:"icon" gorm:"default:folder"`
	OwnerID     *uint           `json:"owner_id,omitempty" gorm:"index"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Members     []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID"`
	Tasks       []Task          `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`

	// Progression is the derived completion percentage, filled in by the
	// project service on reads. It is never stored.
	Progression int `json:"progression" gorm:"-"`
}

// MarshalJSON implements the json.Marshaler interface for Project
func (p Project) MarshalJSON() ([]byte, error) {
	type Alias Project // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(p))
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.Code == "" {
		return fmt.Errorf("project code cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	return p.Validate()
}

// ProjectMember ties a user to a project with a role. A user appears at
// most once per project.
type ProjectMember struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    uint        `json:"user_id" gorm:"not null; uniqueIndex:idx_project_members_membership"`
	ProjectID uint        `json:"project_id" gorm:"not null; uniqueIndex:idx_project_members_membership"`
	Role      ProjectRole `json:"role" gorm:"not null; default:viewer"`
	CreatedAt time.Time   `json:"created_at"`
}
