package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Board flag names
const (
	flagBoardProject = "project"
)

// GetBoardCmd returns the board command tree
func GetBoardCmd() *cobra.Command {
	return boardCmd
}

func init() {
	boardCmd.AddCommand(kanbanCmd)
	boardCmd.AddCommand(ganttCmd)

	kanbanCmd.Flags().StringP(flagBoardProject, "p", "", "Filter by project ID")
	ganttCmd.Flags().StringP(flagBoardProject, "p", "", "Filter by project ID")
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "View task board projections",
}

var kanbanCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Show tasks grouped into kanban columns",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectRaw, _ := cmd.Flags().GetString(flagBoardProject)
		projectID, err := parseOptionalUint(projectRaw)
		if err != nil {
			return err
		}

		board, err := apiClient.GetKanban(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error getting kanban board: %w", err)
		}

		fmt.Printf("New: %d | ToDo: %d | InProgress: %d | Done: %d\n",
			len(board.New), len(board.ToDo), len(board.InProgress), len(board.Done))

		prettyJSON, err := json.MarshalIndent(board, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var ganttCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Show scheduled tasks as gantt rows",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectRaw, _ := cmd.Flags().GetString(flagBoardProject)
		projectID, err := parseOptionalUint(projectRaw)
		if err != nil {
			return err
		}

		rows, err := apiClient.GetGantt(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error getting gantt rows: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}
