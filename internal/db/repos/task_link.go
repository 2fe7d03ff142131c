package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// TaskLinkRepository handles database operations for task links
type TaskLinkRepository struct {
	db *gorm.DB
}

// NewTaskLinkRepository creates a new instance of TaskLinkRepository
func NewTaskLinkRepository(db *gorm.DB) *TaskLinkRepository {
	return &TaskLinkRepository{
		db: db,
	}
}

// Create persists a new link inside a transaction so a failed write cannot
// leave a partial edge
func (r *TaskLinkRepository) Create(ctx context.Context, link *models.TaskLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(link).Error
	})
}

// Exists reports whether an identical (src, dst, type) edge is already stored
func (r *TaskLinkRepository) Exists(ctx context.Context, srcID, dstID uint, linkType models.LinkType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaskLink{}).
		Where("src_task_id = ? AND dst_task_id = ? AND link_type = ?", srcID, dstID, linkType).
		Count(&count).Error
	return count > 0, err
}

// ListBySrc retrieves all outgoing links of a task
func (r *TaskLinkRepository) ListBySrc(ctx context.Context, srcID uint) ([]models.TaskLink, error) {
	var links []models.TaskLink
	err := r.db.WithContext(ctx).Where("src_task_id = ?", srcID).Find(&links).Error
	return links, err
}
