// Package main is the entry point for the jira-create-issue CLI.
package main

import (
	"os"

	"github.com/punkproger/jira-create-issue/pkg/config"
)

func main() {
	// Load environment variables from .env file
	_ = config.LoadEnv()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
