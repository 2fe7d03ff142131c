package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/api/routes"
	"github.com/taskflow-dev/taskflow/pkg/api/client"
)

// flag names
const (
	flagUserID        = "user-id"
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "TASKFLOW_SERVER_ADDRESS"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient(userID uint) error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.UserID = userID

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	// Set a basic default for the flag. PersistentPreRunE will handle env var override.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL, "Address of the TaskFlow API server (env: TASKFLOW_SERVER_ADDRESS)")

	RootCmd.PersistentFlags().UintP(flagUserID, "u", 0, "Acting user ID for requests")

	RootCmd.AddCommand(GetTasksCmd())
	RootCmd.AddCommand(GetNeedsCmd())
	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetBoardCmd())
	RootCmd.AddCommand(GetUsersCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow CLI - A command line interface for the TaskFlow API",
	Long: `TaskFlow CLI is a command line tool for managing tasks, needs, and projects
through the TaskFlow API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Check if the server address flag was explicitly set by the user.
		if !cmd.Flags().Changed(flagServerAddress) {
			envAddr := os.Getenv(envServerAddress)
			if envAddr != "" {
				serverAddress = envAddr
			}
		}

		// Now serverAddress has the correct precedence: Flag > Env Var > Default
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}

		userID, err := cmd.Flags().GetUint(flagUserID)
		if err != nil {
			return fmt.Errorf("error getting user ID flag: %w", err)
		}

		return initClient(userID)
	},
}

// parseOptionalUint parses a flag value into *uint, returning nil for empty input
func parseOptionalUint(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q: %w", raw, err)
	}
	id := uint(v)
	return &id, nil
}
