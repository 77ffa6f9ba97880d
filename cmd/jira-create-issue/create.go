package main

import (
	"github.com/spf13/cobra"

	"github.com/punkproger/jira-create-issue/pkg/jira"
)

var (
	createSetArgs  []string
	createLinkArgs []string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue and link it to existing ones",
	Long: `Create an issue from --set FIELD=VALUE assignments and link it to
existing issues with --link ISSUE:LINK_TYPE.

Field names may be given by display name or by id; raw values are
converted to the shapes the API expects using the tracker's field
schema. The project and issuetype fields are required.

Examples:
  jira-create-issue create --set project=PRJ --set issuetype=Task --set summary="Categorize defects"
  jira-create-issue create --set project=PRJ --set issuetype=Feature --set summary="[PoC] Some feature" \
      --set labels=PoC_Mandatory_Feature --set labels=high_priority \
      --link PRJ-236:"Is part of" --link PRJ-104:"FF-depends on"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseSetArgs(createSetArgs)
		if err != nil {
			printError(err)
			return err
		}

		links, err := parseLinkArgs(createLinkArgs)
		if err != nil {
			printError(err)
			return err
		}

		client, err := newClient()
		if err != nil {
			printError(err)
			return err
		}

		creator := jira.NewCreator(client, logger)
		if err := creator.Run(values, links); err != nil {
			printError(err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringArrayVar(&createSetArgs, "set", nil,
		"Set a FIELD=VALUE pair (repeatable; repeated keys accumulate values)")
	createCmd.Flags().StringArrayVar(&createLinkArgs, "link", nil,
		"Link the new issue: ISSUE_ID:LINK_TYPE, example: PRJ-100:\"Is part of\"")
	createCmd.SilenceUsage = true
}
