package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/types"
)

// Task flag names
const (
	flagTaskID       = "id"
	flagTaskTitle    = "title"
	flagTaskStatus   = "status"
	flagTaskType     = "type"
	flagTaskPriority = "priority"
	flagTaskParent   = "parent"
	flagTaskProject  = "project"
	flagTaskProgress = "progress"
	flagTaskPage     = "page"
	flagLinkTarget   = "target"
	flagLinkType     = "link-type"
)

// taskOutput represents the filtered output for a task
type taskOutput struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Parent   *uint  `json:"parent_id,omitempty"`
	Project  *uint  `json:"project_id,omitempty"`
	Progress int    `json:"progress"`
	Created  string `json:"created_at"`
}

// GetTasksCmd returns the tasks command tree
func GetTasksCmd() *cobra.Command {
	return tasksCmd
}

func init() {
	tasksCmd.AddCommand(createTaskCmd)
	tasksCmd.AddCommand(getTaskCmd)
	tasksCmd.AddCommand(listTasksCmd)
	tasksCmd.AddCommand(updateTaskCmd)
	tasksCmd.AddCommand(deleteTaskCmd)
	tasksCmd.AddCommand(childrenTaskCmd)
	tasksCmd.AddCommand(linkTaskCmd)

	// Add flags for create
	createTaskCmd.Flags().StringP(flagTaskTitle, "t", "", "Task title")
	createTaskCmd.Flags().String(flagTaskStatus, "", "Task status (New, ToDo, InProgress, Done)")
	createTaskCmd.Flags().String(flagTaskType, "", "Task type (epic, story, feature, task, subtask)")
	createTaskCmd.Flags().String(flagTaskPriority, "", "Task priority (low, medium, high, urgent)")
	createTaskCmd.Flags().String(flagTaskParent, "", "Parent task ID")
	createTaskCmd.Flags().StringP(flagTaskProject, "p", "", "Project ID")
	_ = createTaskCmd.MarkFlagRequired(flagTaskTitle)

	// Add flags for get
	getTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	_ = getTaskCmd.MarkFlagRequired(flagTaskID)

	// Add flags for list
	listTasksCmd.Flags().StringP(flagTaskProject, "p", "", "Filter by project ID")
	listTasksCmd.Flags().IntP(flagTaskPage, "g", 1, "Page number for pagination")

	// Add flags for update
	updateTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	updateTaskCmd.Flags().StringP(flagTaskTitle, "t", "", "New title")
	updateTaskCmd.Flags().String(flagTaskStatus, "", "New status")
	updateTaskCmd.Flags().String(flagTaskPriority, "", "New priority")
	updateTaskCmd.Flags().Int(flagTaskProgress, -1, "New progress (0-100)")
	_ = updateTaskCmd.MarkFlagRequired(flagTaskID)

	// Add flags for delete
	deleteTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	_ = deleteTaskCmd.MarkFlagRequired(flagTaskID)

	// Add flags for children
	childrenTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	_ = childrenTaskCmd.MarkFlagRequired(flagTaskID)

	// Add flags for link
	linkTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Source task ID")
	linkTaskCmd.Flags().Uint(flagLinkTarget, 0, "Target task ID")
	linkTaskCmd.Flags().String(flagLinkType, "", "Link type (blocks, depends_on, relates)")
	_ = linkTaskCmd.MarkFlagRequired(flagTaskID)
	_ = linkTaskCmd.MarkFlagRequired(flagLinkTarget)
	_ = linkTaskCmd.MarkFlagRequired(flagLinkType)
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var createTaskCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		title, _ := cmd.Flags().GetString(flagTaskTitle)
		status, _ := cmd.Flags().GetString(flagTaskStatus)
		taskType, _ := cmd.Flags().GetString(flagTaskType)
		priority, _ := cmd.Flags().GetString(flagTaskPriority)

		parentRaw, _ := cmd.Flags().GetString(flagTaskParent)
		parentID, err := parseOptionalUint(parentRaw)
		if err != nil {
			return err
		}
		projectRaw, _ := cmd.Flags().GetString(flagTaskProject)
		projectID, err := parseOptionalUint(projectRaw)
		if err != nil {
			return err
		}

		req := types.TaskCreateRequest{
			Title:     title,
			Status:    status,
			Type:      taskType,
			Priority:  priority,
			ParentID:  parentID,
			ProjectID: projectID,
		}
		if err := req.Validate(); err != nil {
			return err
		}

		task, err := apiClient.CreateTask(context.Background(), req)
		if err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}

		fmt.Printf("Task %d created\n", task.ID)
		return nil
	},
}

var getTaskCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific task by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}
		if taskID == 0 {
			return fmt.Errorf("task ID must be a positive number")
		}

		task, err := apiClient.GetTask(context.Background(), taskID)
		if err != nil {
			return fmt.Errorf("error getting task: %w", err)
		}

		output := taskOutput{
			ID:       task.ID,
			Title:    task.Title,
			Status:   string(task.Status),
			Type:     string(task.Type),
			Priority: string(task.Priority),
			Parent:   task.ParentID,
			Project:  task.ProjectID,
			Progress: task.Progress,
			Created:  task.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		prettyJSON, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var listTasksCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := cmd.Flags().GetInt(flagTaskPage)
		if err != nil {
			return fmt.Errorf("error getting page flag: %w", err)
		}

		projectRaw, _ := cmd.Flags().GetString(flagTaskProject)
		projectID, err := parseOptionalUint(projectRaw)
		if err != nil {
			return err
		}

		tasks, err := apiClient.ListTasks(context.Background(), projectID, page)
		if err != nil {
			return fmt.Errorf("error listing tasks: %w", err)
		}

		output := make([]taskOutput, 0, len(tasks))
		for _, task := range tasks {
			output = append(output, taskOutput{
				ID:       task.ID,
				Title:    task.Title,
				Status:   string(task.Status),
				Type:     string(task.Type),
				Priority: string(task.Priority),
				Parent:   task.ParentID,
				Project:  task.ProjectID,
				Progress: task.Progress,
				Created:  task.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		prettyJSON, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var updateTaskCmd = &cobra.Command{
	Use:   "update",
	Short: "Update fields of a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		req := types.TaskUpdateRequest{}
		if cmd.Flags().Changed(flagTaskTitle) {
			title, _ := cmd.Flags().GetString(flagTaskTitle)
			req.Title = &title
		}
		if cmd.Flags().Changed(flagTaskStatus) {
			status, _ := cmd.Flags().GetString(flagTaskStatus)
			req.Status = &status
		}
		if cmd.Flags().Changed(flagTaskPriority) {
			priority, _ := cmd.Flags().GetString(flagTaskPriority)
			req.Priority = &priority
		}
		if cmd.Flags().Changed(flagTaskProgress) {
			progress, _ := cmd.Flags().GetInt(flagTaskProgress)
			req.Progress = &progress
		}
		if err := req.Validate(); err != nil {
			return err
		}

		task, err := apiClient.UpdateTask(context.Background(), taskID, req)
		if err != nil {
			return fmt.Errorf("error updating task: %w", err)
		}

		fmt.Printf("Task %d updated (status: %s, progress: %d)\n", task.ID, task.Status, task.Progress)
		return nil
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a task and its subtree",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		if err := apiClient.DeleteTask(context.Background(), taskID); err != nil {
			return fmt.Errorf("error deleting task: %w", err)
		}

		fmt.Printf("Task %d deleted\n", taskID)
		return nil
	},
}

var childrenTaskCmd = &cobra.Command{
	Use:   "children",
	Short: "List the subtree below a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		children, err := apiClient.GetChildren(context.Background(), taskID)
		if err != nil {
			return fmt.Errorf("error getting children: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(children, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var linkTaskCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a task to another task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}
		target, err := cmd.Flags().GetUint(flagLinkTarget)
		if err != nil {
			return fmt.Errorf("error getting target flag: %w", err)
		}
		linkType, err := cmd.Flags().GetString(flagLinkType)
		if err != nil {
			return fmt.Errorf("error getting link type flag: %w", err)
		}

		req := types.LinkRequest{Target: &target, Type: linkType}
		if err := req.Validate(); err != nil {
			return err
		}

		link, err := apiClient.CreateLink(context.Background(), taskID, req)
		if err != nil {
			return fmt.Errorf("error creating link: %w", err)
		}

		fmt.Printf("Link %d created: %d %s %d\n", link.ID, link.SrcTaskID, link.LinkType, link.DstTaskID)
		return nil
	},
}
