package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Need is a pre-task request awaiting validation. Once a need is validated
// with status "ToDo" it may automatically spawn a task.
type Need struct {
	gorm.Model
	Title       string     `json:"title" gorm:"not null; index"`
	Description string     `json:"description" gorm:"type:text"`
	IsValidated bool       `json:"is_validated" gorm:"not null; default:false"`
	Status      TaskStatus `json:"status" gorm:"not null; index"`
	OwnerID     *uint      `json:"owner_id,omitempty" gorm:"index"`
}

// Validate ensures that the need data is valid
func (n *Need) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("need title cannot be empty")
	}
	if _, err := ParseTaskStatus(string(n.Status)); err != nil {
		return err
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new need
func (n *Need) BeforeCreate(_ *gorm.DB) error {
	if n.Status == "" {
		n.Status = TaskStatusNew
	}
	return n.Validate()
}

// BeforeUpdate is a GORM hook that runs before saving changes to a need.
// Column-level updates carry a zero model, so only full saves are validated.
func (n *Need) BeforeUpdate(_ *gorm.DB) error {
	if n.ID == 0 {
		return nil
	}
	return n.Validate()
}

// NeedTrace is an append-only audit row recording one mutation of a need.
// Rows are never updated or deleted.
type NeedTrace struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	NeedID       uint       `json:"need_id" gorm:"not null; index"`
	UserID       *uint      `json:"user_id,omitempty"`
	OldStatus    TaskStatus `json:"old_status"`
	NewStatus    TaskStatus `json:"new_status"`
	OldValidated bool       `json:"old_validated"`
	NewValidated bool       `json:"new_validated"`
	Timestamp    time.Time  `json:"timestamp" gorm:"autoCreateTime; index"`
}
