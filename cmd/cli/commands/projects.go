package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/types"
)

// Project flag names
const (
	flagProjectID   = "id"
	flagProjectName = "name"
	flagProjectCode = "code"
	flagProjectDesc = "description"
	flagProjectPage = "page"
)

// projectOutput represents the filtered output for a project
type projectOutput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Progression int    `json:"progression"`
	Created     string `json:"created_at"`
}

// GetProjectsCmd returns the projects command tree
func GetProjectsCmd() *cobra.Command {
	return projectsCmd
}

func init() {
	projectsCmd.AddCommand(createProjectCmd)
	projectsCmd.AddCommand(getProjectCmd)
	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(deleteProjectCmd)

	// Add flags for create
	createProjectCmd.Flags().StringP(flagProjectName, "n", "", "Project name")
	createProjectCmd.Flags().StringP(flagProjectCode, "c", "", "Short project code (e.g. TFL)")
	createProjectCmd.Flags().StringP(flagProjectDesc, "d", "", "Project description")
	_ = createProjectCmd.MarkFlagRequired(flagProjectName)
	_ = createProjectCmd.MarkFlagRequired(flagProjectCode)

	// Add flags for get
	getProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = getProjectCmd.MarkFlagRequired(flagProjectID)

	// Add flags for list
	listProjectsCmd.Flags().IntP(flagProjectPage, "g", 1, "Page number for pagination")

	// Add flags for delete
	deleteProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = deleteProjectCmd.MarkFlagRequired(flagProjectID)
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var createProjectCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString(flagProjectName)
		code, _ := cmd.Flags().GetString(flagProjectCode)
		description, _ := cmd.Flags().GetString(flagProjectDesc)

		req := types.ProjectCreateRequest{Name: name, Code: code, Description: description}
		if err := req.Validate(); err != nil {
			return err
		}

		project, err := apiClient.CreateProject(context.Background(), req)
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		fmt.Printf("Project %d (%s) created\n", project.ID, project.Code)
		return nil
	},
}

var getProjectCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific project by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		project, err := apiClient.GetProject(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error getting project: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(project, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their completion percentage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := cmd.Flags().GetInt(flagProjectPage)
		if err != nil {
			return fmt.Errorf("error getting page flag: %w", err)
		}

		projects, err := apiClient.ListProjects(context.Background(), page)
		if err != nil {
			return fmt.Errorf("error listing projects: %w", err)
		}

		output := make([]projectOutput, 0, len(projects))
		for _, project := range projects {
			output = append(output, projectOutput{
				ID:          project.ID,
				Name:        project.Name,
				Code:        project.Code,
				Progression: project.Progression,
				Created:     project.CreatedAt.Format("2006-01-02 15:04:05"),
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

var deleteProjectCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project and all of its tasks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		if err := apiClient.DeleteProject(context.Background(), projectID); err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}

		fmt.Printf("Project %d deleted\n", projectID)
		return nil
	},
}
