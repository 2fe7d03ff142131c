package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Attachment is a file bound to exactly one task. The row stores where the
// file landed on disk; the bytes themselves live outside the database.
type Attachment struct {
	gorm.Model
	TaskID       uint      `json:"task_id" gorm:"not null; index"`
	FileName     string    `json:"file_name" gorm:"not null"`
	StoredPath   string    `json:"-" gorm:"not null"`
	UploadedByID *uint     `json:"uploaded_by,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Validate ensures that the attachment data is valid
func (a *Attachment) Validate() error {
	if a.TaskID == 0 {
		return fmt.Errorf("attachment must reference a task")
	}
	if a.FileName == "" {
		return fmt.Errorf("attachment file name cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new attachment
func (a *Attachment) BeforeCreate(_ *gorm.DB) error {
	if a.UploadedAt.IsZero() {
		a.UploadedAt = time.Now()
	}
	return a.Validate()
}
