package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
	"github.com/taskflow-dev/taskflow/internal/logger"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// Need handles need-related operations, including the status transition
// engine that records traces and auto-promotes validated needs into tasks.
type Need struct {
	db     *gorm.DB
	needs  *repos.NeedRepository
	traces *repos.NeedTraceRepository
	tasks  *repos.TaskRepository
}

// NewNeedService creates a new instance of NeedService. The db handle is
// used to group each update with its trace and promotion in one transaction.
func NewNeedService(db *gorm.DB, needs *repos.NeedRepository, traces *repos.NeedTraceRepository, tasks *repos.TaskRepository) *Need {
	return &Need{
		db:     db,
		needs:  needs,
		traces: traces,
		tasks:  tasks,
	}
}

// Create creates a new need
func (s *Need) Create(ctx context.Context, need *models.Need) error {
	return s.needs.Create(ctx, need)
}

// Get retrieves a need by ID
func (s *Need) Get(ctx context.Context, needID uint) (*models.Need, error) {
	return s.needs.GetByID(ctx, needID)
}

// List retrieves all needs with pagination
func (s *Need) List(ctx context.Context, opts *models.ListOptions) ([]models.Need, error) {
	return s.needs.List(ctx, opts)
}

// Update applies a partial update to a need. The update, the trace row and
// a possible task auto-promotion all commit in one transaction: a failed
// trace write aborts the whole update.
//
// Promotion rule: when validation flips false to true and the resulting
// status is ToDo, a task is created with the need's title, unless one with
// the same title and the need's owner already exists. The created task is
// owned by the need's owner, falling back to the acting user for an
// ownerless need; the duplicate check always runs against the need's owner.
// Check and insert run as one conditional statement, so validating two
// needs with the same (title, owner) concurrently yields a single task.
func (s *Need) Update(ctx context.Context, needID uint, actingUserID *uint, req types.NeedUpdateRequest) (*models.Need, error) {
	var updated *models.Need
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		needs := s.needs.WithTx(tx)

		need, err := needs.GetByID(ctx, needID)
		if err != nil {
			return err
		}
		oldStatus := need.Status
		oldValidated := need.IsValidated

		if req.Title != nil {
			need.Title = *req.Title
		}
		if req.Description != nil {
			need.Description = *req.Description
		}
		if req.Status != nil {
			need.Status = models.TaskStatus(*req.Status)
		}
		if req.IsValidated != nil {
			need.IsValidated = *req.IsValidated
		}
		if req.OwnerID != nil {
			need.OwnerID = req.OwnerID
		}
		if err := needs.Update(ctx, need); err != nil {
			return err
		}

		trace := &models.NeedTrace{
			NeedID:       need.ID,
			UserID:       actingUserID,
			OldStatus:    oldStatus,
			NewStatus:    need.Status,
			OldValidated: oldValidated,
			NewValidated: need.IsValidated,
		}
		if err := s.traces.WithTx(tx).Create(ctx, trace); err != nil {
			return fmt.Errorf("failed to record need trace: %w", err)
		}

		if !oldValidated && need.IsValidated && need.Status == models.TaskStatusToDo {
			owner := need.OwnerID
			if owner == nil {
				owner = actingUserID
			}
			created, err := s.tasks.WithTx(tx).CreateFromNeed(ctx, need.Title, need.OwnerID, owner)
			if err != nil {
				return err
			}
			if created {
				logger.InfoWithFields("Task auto-created from validated need", map[string]interface{}{
					"need_id": need.ID,
					"title":   need.Title,
				})
			}
		}

		updated = need
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a need and its traces. Deletion is blocked while the need
// is in progress.
func (s *Need) Delete(ctx context.Context, needID uint) error {
	need, err := s.needs.GetByID(ctx, needID)
	if err != nil {
		return err
	}
	if need.Status == models.TaskStatusInProgress {
		return ErrNeedInProgress
	}
	return s.needs.Delete(ctx, needID)
}

// Traces returns the audit history of a need
func (s *Need) Traces(ctx context.Context, needID uint) ([]models.NeedTrace, error) {
	if _, err := s.needs.GetByID(ctx, needID); err != nil {
		return nil, err
	}
	return s.traces.ListByNeed(ctx, needID)
}
