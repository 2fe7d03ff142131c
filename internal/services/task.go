package services

import (
	"context"
	"fmt"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// maxParentDepth bounds the parent chain walk. A chain deeper than this is
// treated as corrupted storage rather than walked forever.
const maxParentDepth = 1000

// Task handles task-related operations
type Task struct {
	repo *repos.TaskRepository
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(repo *repos.TaskRepository) *Task {
	return &Task{
		repo: repo,
	}
}

// Create validates and creates a new task
func (s *Task) Create(ctx context.Context, task *models.Task) error {
	if err := s.validateParent(ctx, task.ID, task.ParentID); err != nil {
		return err
	}
	return s.repo.Create(ctx, task)
}

// CreateBatch validates and creates a batch of tasks
func (s *Task) CreateBatch(ctx context.Context, tasks []*models.Task) error {
	for _, task := range tasks {
		if err := s.validateParent(ctx, task.ID, task.ParentID); err != nil {
			return err
		}
	}
	return s.repo.CreateBatch(ctx, tasks)
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, taskID uint) (*models.Task, error) {
	return s.repo.GetByID(ctx, taskID)
}

// List retrieves tasks with optional filters and pagination
func (s *Task) List(ctx context.Context, opts *models.ListOptions) ([]models.Task, error) {
	return s.repo.List(ctx, opts)
}

// Update applies a partial update to a task, re-validating the hierarchy
// when the parent reference changes. A status-only update, the usual board
// drag, is applied as a single column update.
func (s *Task) Update(ctx context.Context, taskID uint, req types.TaskUpdateRequest) (*models.Task, error) {
	if isStatusOnlyUpdate(req) {
		status, err := models.ParseTaskStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if _, err := s.repo.GetByID(ctx, taskID); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateStatus(ctx, taskID, status); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, taskID)
	}

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Type != nil {
		task.Type = models.TaskType(*req.Type)
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.Module != nil {
		task.Module = *req.Module
	}
	if req.TargetVersion != nil {
		task.TargetVersion = *req.TargetVersion
	}
	if req.OwnerID != nil {
		task.OwnerID = req.OwnerID
	}
	if req.ReporterID != nil {
		task.ReporterID = req.ReporterID
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}
	if req.ParentID != nil {
		task.ParentID = req.ParentID
	}
	if req.ProjectID != nil {
		task.ProjectID = req.ProjectID
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateParent(ctx, task.ID, task.ParentID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// isStatusOnlyUpdate reports whether the request changes nothing but the
// status
func isStatusOnlyUpdate(req types.TaskUpdateRequest) bool {
	return req.Status != nil &&
		req.Title == nil && req.Type == nil && req.Priority == nil &&
		req.Module == nil && req.TargetVersion == nil &&
		req.OwnerID == nil && req.ReporterID == nil &&
		req.StartDate == nil && req.DueDate == nil &&
		req.Progress == nil && req.ParentID == nil && req.ProjectID == nil
}

// Delete removes a task and everything it owns. Deletion is blocked while
// the task is in progress.
func (s *Task) Delete(ctx context.Context, taskID uint) error {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status == models.TaskStatusInProgress {
		return ErrTaskInProgress
	}
	return s.repo.Delete(ctx, taskID)
}

// Children returns the direct children of a task with each child's own
// subtree filled in, so the whole subtree is reachable from any ancestor.
func (s *Task) Children(ctx context.Context, taskID uint) ([]models.Task, error) {
	if _, err := s.repo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	visited := map[uint]bool{taskID: true}
	return s.loadChildren(ctx, taskID, visited)
}

func (s *Task) loadChildren(ctx context.Context, parentID uint, visited map[uint]bool) ([]models.Task, error) {
	children, err := s.repo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		if visited[children[i].ID] {
			// corrupted parent pointers; stop rather than recurse forever
			continue
		}
		visited[children[i].ID] = true
		sub, err := s.loadChildren(ctx, children[i].ID, visited)
		if err != nil {
			return nil, err
		}
		children[i].Children = sub
	}
	return children, nil
}

// validateParent enforces the tree invariants for a candidate parent
// reference: a task is never its own parent, and walking the parent chain
// upward never revisits the task. The walk is iterative and bounded, so a
// corrupted cyclic chain already in storage errors out instead of looping.
func (s *Task) validateParent(ctx context.Context, taskID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if taskID != 0 && *parentID == taskID {
		return ErrSelfParent
	}

	seen := map[uint]bool{}
	current := *parentID
	for depth := 0; depth < maxParentDepth; depth++ {
		if taskID != 0 && current == taskID {
			return ErrHierarchyCycle
		}
		if seen[current] {
			return ErrHierarchyTooDeep
		}
		seen[current] = true

		ancestor, err := s.repo.GetByID(ctx, current)
		if err != nil {
			return fmt.Errorf("parent task %d: %w", current, err)
		}
		if ancestor.ParentID == nil {
			return nil
		}
		current = *ancestor.ParentID
	}
	return ErrHierarchyTooDeep
}
