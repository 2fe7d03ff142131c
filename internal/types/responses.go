package types

import (
	"time"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// MessageResponse is the envelope returned by create endpoints
type MessageResponse struct {
	// Human readable outcome of the operation
	Message string `json:"message"`

	// The created resource(s)
	Data interface{} `json:"data"`
}

// KanbanBoard groups tasks into the four fixed status columns. Tasks whose
// stored status matches none of the columns appear nowhere on the board.
type KanbanBoard struct {
	New        []models.Task `json:"New"`
	ToDo       []models.Task `json:"ToDo"`
	InProgress []models.Task `json:"InProgress"`
	Done       []models.Task `json:"Done"`
}

// GanttRow is one task in the gantt projection. Only tasks with both a
// start and a due date are projected.
type GanttRow struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`
	Progress  int        `json:"progress"`
	ParentID  *uint      `json:"parent"`
}
