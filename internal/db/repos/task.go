// Package repos contains the database repositories. Each repository wraps
// a *gorm.DB handle passed in by the caller; there is no global session.
package repos

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// CreateBatch creates a batch of tasks in the database
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []*models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(tasks, 100).Error
	})
}

// GetByID retrieves a task by ID from the database
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with optional project/status filters and pagination
func (r *TaskRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.WithContext(ctx).Model(&models.Task{}).Order("id DESC")
	if opts != nil {
		if opts.ProjectID != nil {
			query = query.Where("project_id = ?", *opts.ProjectID)
		}
		if opts.Status != nil {
			query = query.Where("status = ?", *opts.Status)
		}
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit).Offset(opts.Offset)
		}
	}
	err := query.Find(&tasks).Error
	return tasks, err
}

// ListChildren retrieves the direct children of a task
func (r *TaskRepository) ListChildren(ctx context.Context, parentID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&tasks).Error
	return tasks, err
}

// ListScheduled retrieves tasks that have both a start and a due date,
// optionally filtered by project
func (r *TaskRepository) ListScheduled(ctx context.Context, projectID *uint) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.WithContext(ctx).
		Where("start_date IS NOT NULL").
		Where("due_date IS NOT NULL")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	err := query.Find(&tasks).Error
	return tasks, err
}

// CreateFromNeed inserts the task promoted from a validated need unless a
// task with the same title and checkOwnerID already exists. The existence
// check and the insert run as a single statement, so two concurrent
// promotions of the same (title, owner) pair cannot both pass a separate
// check before either inserts. Returns whether a row was inserted.
func (r *TaskRepository) CreateFromNeed(ctx context.Context, title string, checkOwnerID, taskOwnerID *uint) (bool, error) {
	now := time.Now()
	guard := "owner_id IS NULL"
	args := []interface{}{
		now, now, title,
		string(models.TaskStatusToDo), string(models.TaskTypeTask), string(models.TaskPriorityMedium),
		0, taskOwnerID, title,
	}
	if checkOwnerID != nil {
		guard = "owner_id = ?"
		args = append(args, *checkOwnerID)
	}
	res := r.db.WithContext(ctx).Exec(fmt.Sprintf(`
		INSERT INTO tasks (created_at, updated_at, title, status, type, priority, progress, owner_id)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM tasks WHERE title = ? AND %s AND deleted_at IS NULL
		)`, guard), args...)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Update saves all fields of an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdateStatus updates the status of a task in the database
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint, status models.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).
		Update(models.TaskStatusField, status).Error
}

// Delete removes a task together with everything it owns: its subtree of
// child tasks, the links touching any task in that subtree, and their
// attachments. Everything happens in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	ids, err := r.subtreeIDs(ctx, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("src_task_id IN ? OR dst_task_id IN ?", ids, ids).
			Delete(&models.TaskLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN ?", ids).
			Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Task{}).Error
	})
}

// DeleteByProject removes every task of a project, cascading the same way
// Delete does. Used when a project itself is deleted.
func (r *TaskRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	var ids []uint
	if err := tx.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("src_task_id IN ? OR dst_task_id IN ?", ids, ids).
		Delete(&models.TaskLink{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", ids).
		Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Task{}).Error
}

// CountByProject returns the number of tasks in a project, and how many of
// them are done
func (r *TaskRepository) CountByProject(ctx context.Context, projectID uint) (total int64, done int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskStatusDone).
		Count(&done).Error
	return total, done, err
}

// subtreeIDs collects the ids of a task and all its descendants by walking
// the child sets breadth-first
func (r *TaskRepository) subtreeIDs(ctx context.Context, id uint) ([]uint, error) {
	ids := []uint{id}
	seen := map[uint]bool{id: true}
	frontier := []uint{id}
	for len(frontier) > 0 {
		var next []uint
		if err := r.db.WithContext(ctx).Model(&models.Task{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, childID := range next {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			ids = append(ids, childID)
			frontier = append(frontier, childID)
		}
	}
	return ids, nil
}
