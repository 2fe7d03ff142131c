package services

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// Board builds the read-only kanban and gantt projections. It never
// mutates anything.
type Board struct {
	tasks *repos.TaskRepository
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(tasks *repos.TaskRepository) *Board {
	return &Board{
		tasks: tasks,
	}
}

// Kanban groups tasks into the four fixed status columns, optionally
// filtered by project. A task whose stored status matches none of the
// columns lands in no bucket at all; the board silently skips it.
func (s *Board) Kanban(ctx context.Context, projectID *uint) (*types.KanbanBoard, error) {
	tasks, err := s.tasks.List(ctx, &models.ListOptions{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	board := &types.KanbanBoard{
		New:        []models.Task{},
		ToDo:       []models.Task{},
		InProgress: []models.Task{},
		Done:       []models.Task{},
	}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusNew:
			board.New = append(board.New, task)
		case models.TaskStatusToDo:
			board.ToDo = append(board.ToDo, task)
		case models.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case models.TaskStatusDone:
			board.Done = append(board.Done, task)
		}
	}
	return board, nil
}

// Gantt projects tasks that have both a start and a due date, optionally
// filtered by project. Ordering is storage-default.
func (s *Board) Gantt(ctx context.Context, projectID *uint) ([]types.GanttRow, error) {
	tasks, err := s.tasks.ListScheduled(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows := make([]types.GanttRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, types.GanttRow{
			ID:        task.ID,
			Title:     task.Title,
			StartDate: task.StartDate,
			DueDate:   task.DueDate,
			Progress:  task.Progress,
			ParentID:  task.ParentID,
		})
	}
	return rows, nil
}
