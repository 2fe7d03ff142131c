package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for task model
const (
	// TaskStatusField is the field name for task status
	TaskStatusField = "status"
	// TaskTitleField is the field name for task title
	TaskTitleField = "title"
)

// TaskStatus represents the current state of a task on the board
type TaskStatus string

// Task status constants. These four values are the only valid statuses;
// anything else is rejected at write time.
const (
	// TaskStatusNew indicates a freshly filed task that has not been triaged
	TaskStatusNew TaskStatus = "New"
	// TaskStatusToDo indicates the task is ready to be picked up
	TaskStatusToDo TaskStatus = "ToDo"
	// TaskStatusInProgress indicates the task is actively being worked on
	TaskStatusInProgress TaskStatus = "InProgress"
	// TaskStatusDone indicates the task is finished
	TaskStatusDone TaskStatus = "Done"
)

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a string to a TaskStatus type
func ParseTaskStatus(str string) (TaskStatus, error) {
	switch str {
	case string(TaskStatusNew):
		return TaskStatusNew, nil
	case string(TaskStatusToDo):
		return TaskStatusToDo, nil
	case string(TaskStatusInProgress):
		return TaskStatusInProgress, nil
	case string(TaskStatusDone):
		return TaskStatusDone, nil
	default:
		return "", fmt.Errorf("invalid task status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for TaskStatus
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseTaskStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// TaskType classifies a task in the epic/story hierarchy
type TaskType string

// Task type constants
const (
	TaskTypeEpic    TaskType = "epic"
	TaskTypeStory   TaskType = "story"
	TaskTypeFeature TaskType = "feature"
	TaskTypeTask    TaskType = "task"
	TaskTypeSubtask TaskType = "subtask"
)

// ParseTaskType converts a string to a TaskType
func ParseTaskType(str string) (TaskType, error) {
	switch str {
	case string(TaskTypeEpic), string(TaskTypeStory), string(TaskTypeFeature),
		string(TaskTypeTask), string(TaskTypeSubtask):
		return TaskType(str), nil
	default:
		return "", fmt.Errorf("invalid task type: %s", str)
	}
}

// TaskPriority represents how urgent a task is
type TaskPriority string

// Task priority constants
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// ParseTaskPriority converts a string to a TaskPriority
func ParseTaskPriority(str string) (TaskPriority, error) {
	switch str {
	case string(TaskPriorityLow), string(TaskPriorityMedium),
		string(TaskPriorityHigh), string(TaskPriorityUrgent):
		return TaskPriority(str), nil
	default:
		return "", fmt.Errorf("invalid task priority: %s", str)
	}
}

// Task represents a unit of work tracked on the board. Tasks form a tree
// through ParentID; a task owns its attachments and links and they are
// removed with it.
type Task struct {
	gorm.Model
	Title         string       `json:"title" gorm:"not null; index"`
	Status        TaskStatus   `json:"status" gorm:"not null; index"`
	Type          TaskType     `json:"type" gorm:"not null; default:task"`
	Priority      TaskPriority `json:"priority" gorm:"not null; default:medium"`
	Module        string       `json:"module,omitempty"`
	TargetVersion string       `json:"target_version,omitempty"`
	OwnerID       *uint        `json:"owner_id,omitempty" gorm:"index"`
	ReporterID    *uint        `json:"reporter_id,omitempty"`
	StartDate     *time.Time   `json:"start_date,omitempty"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	Progress      int          `json:"progress" gorm:"not null; default:0"`
	ParentID      *uint        `json:"parent_id,omitempty" gorm:"index"`
	ProjectID     *uint        `json:"project_id,omitempty" gorm:"index"`
	Children      []Task       `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Links         []TaskLink   `json:"links,omitempty" gorm:"foreignKey:SrcTaskID"`
	Attachments   []Attachment `json:"attachments,omitempty" gorm:"foreignKey:TaskID"`
}

// MarshalJSON implements the json.Marshaler interface for Task
func (t Task) MarshalJSON() ([]byte, error) {
	type Alias Task // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(t))
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if _, err := ParseTaskStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParseTaskType(string(t.Type)); err != nil {
		return err
	}
	if _, err := ParseTaskPriority(string(t.Priority)); err != nil {
		return err
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task progress must be between 0 and 100, got %d", t.Progress)
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusToDo
	}
	if t.Type == "" {
		t.Type = TaskTypeTask
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	return t.Validate()
}

// BeforeUpdate is a GORM hook that runs before saving changes to a task.
// Column-level updates carry a zero model, so only full saves are validated.
func (t *Task) BeforeUpdate(_ *gorm.DB) error {
	if t.ID == 0 {
		return nil
	}
	return t.Validate()
}
