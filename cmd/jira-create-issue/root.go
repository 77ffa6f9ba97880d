package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/punkproger/jira-create-issue/pkg/config"
	"github.com/punkproger/jira-create-issue/pkg/jira"
)

var (
	// Global flags
	verbose    bool
	jiraServer string
	jiraUser   string
	jiraToken  string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jira-create-issue",
	Short: "Create and link Jira issues from the command line",
	Long: `Creates a Jira issue from field assignments given on the command line,
resolving raw string values against the tracker's field schema, and
optionally links the new issue to existing ones.

Credentials come from the --jira-server/--jira-user/--jira-token flags
or from the JIRA_API_SERVER, JIRA_API_USERNAME and JIRA_API_TOKEN
environment variables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logger based on verbose flag
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&jiraServer, "jira-server", "s", "", "Jira API server address (overrides JIRA_API_SERVER environment variable)")
	rootCmd.PersistentFlags().StringVarP(&jiraUser, "jira-user", "u", "", "Jira API login username (overrides JIRA_API_USERNAME environment variable)")
	rootCmd.PersistentFlags().StringVarP(&jiraToken, "jira-token", "t", "", "Jira API secure token (overrides JIRA_API_TOKEN environment variable)")
}

// newClient resolves login info and builds a Jira client. Logs the
// login target so failed runs are attributable to a server.
func newClient() (*jira.Client, error) {
	login, err := config.ResolveLogin(jiraServer, jiraUser, jiraToken)
	if err != nil {
		return nil, err
	}
	logger.Info("Jira login configured", "server", login.Server, "username", login.User)
	return jira.NewClient(login, logger), nil
}

// printJSON outputs data as indented JSON to stdout.
func printJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// printError outputs an error to stderr.
func printError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}
