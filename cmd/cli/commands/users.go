package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/types"
)

// User flag names
const (
	flagUsername = "username"
	flagEmail    = "email"
	flagUserPage = "page"
)

// GetUsersCmd returns the users command tree
func GetUsersCmd() *cobra.Command {
	return usersCmd
}

func init() {
	usersCmd.AddCommand(createUserCmd)
	usersCmd.AddCommand(listUsersCmd)

	createUserCmd.Flags().StringP(flagUsername, "n", "", "Username")
	createUserCmd.Flags().StringP(flagEmail, "e", "", "Email address")
	_ = createUserCmd.MarkFlagRequired(flagUsername)

	listUsersCmd.Flags().IntP(flagUserPage, "g", 1, "Page number for pagination")
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString(flagUsername)
		email, _ := cmd.Flags().GetString(flagEmail)

		req := types.UserCreateRequest{Username: username, Email: email}
		if err := req.Validate(); err != nil {
			return err
		}

		user, err := apiClient.CreateUser(context.Background(), req)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		fmt.Printf("User %d (%s) created\n", user.ID, user.Username)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := cmd.Flags().GetInt(flagUserPage)
		if err != nil {
			return fmt.Errorf("error getting page flag: %w", err)
		}

		users, err := apiClient.ListUsers(context.Background(), page)
		if err != nil {
			return fmt.Errorf("error listing users: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(users, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}
