package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// Need flag names
const (
	flagNeedID          = "id"
	flagNeedTitle       = "title"
	flagNeedDescription = "description"
	flagNeedStatus      = "status"
	flagNeedValidated   = "validated"
	flagNeedPage        = "page"
)

// GetNeedsCmd returns the needs command tree
func GetNeedsCmd() *cobra.Command {
	return needsCmd
}

func init() {
	needsCmd.AddCommand(createNeedCmd)
	needsCmd.AddCommand(getNeedCmd)
	needsCmd.AddCommand(listNeedsCmd)
	needsCmd.AddCommand(updateNeedCmd)
	needsCmd.AddCommand(validateNeedCmd)
	needsCmd.AddCommand(deleteNeedCmd)
	needsCmd.AddCommand(needTracesCmd)

	// Add flags for create
	createNeedCmd.Flags().StringP(flagNeedTitle, "t", "", "Need title")
	createNeedCmd.Flags().StringP(flagNeedDescription, "d", "", "Need description")
	_ = createNeedCmd.MarkFlagRequired(flagNeedTitle)

	// Add flags for get
	getNeedCmd.Flags().UintP(flagNeedID, "i", 0, "Need ID")
	_ = getNeedCmd.MarkFlagRequired(flagNeedID)

	// Add flags for list
	listNeedsCmd.Flags().IntP(flagNeedPage, "g", 1, "Page number for pagination")

	// Add flags for update
	updateNeedCmd.Flags().UintP(flagNeedID, "i", 0, "Need ID")
	updateNeedCmd.Flags().StringP(flagNeedTitle, "t", "", "New title")
	updateNeedCmd.Flags().String(flagNeedStatus, "", "New status (New, ToDo, InProgress, Done)")
	updateNeedCmd.Flags().Bool(flagNeedValidated, false, "Mark the need as validated")
	_ = updateNeedCmd.MarkFlagRequired(flagNeedID)

	// Add flags for validate
	validateNeedCmd.Flags().UintP(flagNeedID, "i", 0, "Need ID")
	_ = validateNeedCmd.MarkFlagRequired(flagNeedID)

	// Add flags for delete
	deleteNeedCmd.Flags().UintP(flagNeedID, "i", 0, "Need ID")
	_ = deleteNeedCmd.MarkFlagRequired(flagNeedID)

	// Add flags for traces
	needTracesCmd.Flags().UintP(flagNeedID, "i", 0, "Need ID")
	_ = needTracesCmd.MarkFlagRequired(flagNeedID)
}

var needsCmd = &cobra.Command{
	Use:   "needs",
	Short: "Manage needs and their audit traces",
}

var createNeedCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new need",
	RunE: func(cmd *cobra.Command, _ []string) error {
		title, _ := cmd.Flags().GetString(flagNeedTitle)
		description, _ := cmd.Flags().GetString(flagNeedDescription)

		req := types.NeedCreateRequest{Title: title, Description: description}
		if err := req.Validate(); err != nil {
			return err
		}

		need, err := apiClient.CreateNeed(context.Background(), req)
		if err != nil {
			return fmt.Errorf("error creating need: %w", err)
		}

		fmt.Printf("Need %d created\n", need.ID)
		return nil
	},
}

var getNeedCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific need by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		needID, err := cmd.Flags().GetUint(flagNeedID)
		if err != nil {
			return fmt.Errorf("error getting need ID flag: %w", err)
		}

		need, err := apiClient.GetNeed(context.Background(), needID)
		if err != nil {
			return fmt.Errorf("error getting need: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(need, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var listNeedsCmd = &cobra.Command{
	Use:   "list",
	Short: "List needs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := cmd.Flags().GetInt(flagNeedPage)
		if err != nil {
			return fmt.Errorf("error getting page flag: %w", err)
		}

		needs, err := apiClient.ListNeeds(context.Background(), page)
		if err != nil {
			return fmt.Errorf("error listing needs: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(needs, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var updateNeedCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a need, validating it promotes it to a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		needID, err := cmd.Flags().GetUint(flagNeedID)
		if err != nil {
			return fmt.Errorf("error getting need ID flag: %w", err)
		}

		req := types.NeedUpdateRequest{}
		if cmd.Flags().Changed(flagNeedTitle) {
			title, _ := cmd.Flags().GetString(flagNeedTitle)
			req.Title = &title
		}
		if cmd.Flags().Changed(flagNeedStatus) {
			status, _ := cmd.Flags().GetString(flagNeedStatus)
			req.Status = &status
		}
		if cmd.Flags().Changed(flagNeedValidated) {
			validated, _ := cmd.Flags().GetBool(flagNeedValidated)
			req.IsValidated = &validated
		}
		if err := req.Validate(); err != nil {
			return err
		}

		need, err := apiClient.UpdateNeed(context.Background(), needID, req)
		if err != nil {
			return fmt.Errorf("error updating need: %w", err)
		}

		fmt.Printf("Need %d updated (status: %s, validated: %t)\n", need.ID, need.Status, need.IsValidated)
		return nil
	},
}

var validateNeedCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a need, promoting it to a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		needID, err := cmd.Flags().GetUint(flagNeedID)
		if err != nil {
			return fmt.Errorf("error getting need ID flag: %w", err)
		}

		status := string(models.TaskStatusToDo)
		validated := true
		req := types.NeedUpdateRequest{
			Status:      &status,
			IsValidated: &validated,
		}

		need, err := apiClient.UpdateNeed(context.Background(), needID, req)
		if err != nil {
			return fmt.Errorf("error validating need: %w", err)
		}

		fmt.Printf("Need %d validated (status: %s)\n", need.ID, need.Status)
		return nil
	},
}

var deleteNeedCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a need",
	RunE: func(cmd *cobra.Command, _ []string) error {
		needID, err := cmd.Flags().GetUint(flagNeedID)
		if err != nil {
			return fmt.Errorf("error getting need ID flag: %w", err)
		}

		if err := apiClient.DeleteNeed(context.Background(), needID); err != nil {
			return fmt.Errorf("error deleting need: %w", err)
		}

		fmt.Printf("Need %d deleted\n", needID)
		return nil
	},
}

var needTracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List the audit trail of a need",
	RunE: func(cmd *cobra.Command, _ []string) error {
		needID, err := cmd.Flags().GetUint(flagNeedID)
		if err != nil {
			return fmt.Errorf("error getting need ID flag: %w", err)
		}

		traces, err := apiClient.ListNeedTraces(context.Background(), needID)
		if err != nil {
			return fmt.Errorf("error listing need traces: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(traces, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}
