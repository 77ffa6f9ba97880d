package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fieldsIssueType    string
	fieldsIssueProject string
)

// fieldSummary is the trimmed per-field view printed by the fields
// command.
type fieldSummary struct {
	Name   string `json:"name"`
	Schema any    `json:"schema,omitempty"`
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the tracker's field schema",
	Long: `Show all known fields and their schema. With --issue_type, shows the
editable fields of an example issue of that type instead, optionally
narrowed to a project with --issue_project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			printError(err)
			return err
		}

		if fieldsIssueType == "" {
			rawFields, err := client.Fields()
			if err != nil {
				printError(err)
				return err
			}

			summary := make(map[string]fieldSummary, len(rawFields))
			for _, raw := range rawFields {
				id, _ := raw["id"].(string)
				name, _ := raw["name"].(string)
				summary[id] = fieldSummary{Name: name, Schema: raw["schema"]}
			}
			return printJSON(summary)
		}

		sample, err := client.FindIssueByType(fieldsIssueType, fieldsIssueProject)
		if err != nil {
			printError(err)
			return err
		}
		if sample == nil {
			err := fmt.Errorf("no issues found with type: %s", fieldsIssueType)
			printError(err)
			return err
		}

		meta, err := client.EditMeta(sample.Key)
		if err != nil {
			printError(err)
			return err
		}
		return printJSON(meta)
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVar(&fieldsIssueType, "issue_type", "", "Show fields of a specific issue type")
	fieldsCmd.Flags().StringVar(&fieldsIssueProject, "issue_project", "", "Show fields of a specific project (only with --issue_type)")
	fieldsCmd.SilenceUsage = true
}
