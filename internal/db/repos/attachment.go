package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// AttachmentRepository handles database operations for attachments
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db: db,
	}
}

// Create creates a new attachment in the database
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// ListByTask retrieves all attachments of a task
func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&attachments).Error
	return attachments, err
}
