package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/taskflow-dev/taskflow/cmd/cli/commands"
)

func main() {
	// Load .env so TASKFLOW_SERVER_ADDRESS can come from a dotenv file
	_ = godotenv.Load()

	if err := commands.RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
