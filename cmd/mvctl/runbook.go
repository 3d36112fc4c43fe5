package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jbweber/mvctl/internal/output"
	"github.com/jbweber/mvctl/internal/provision"
)

func init() {
	rootCmd.AddCommand(runbookCmd)
}

var runbookCmd = &cobra.Command{
	Use:   "runbook <managed-volume-name>",
	Short: "Print the setup runbook of an existing managed volume",
	Long: `Print the fstab entries, mount commands, RMAN channels, and snapshot
curl commands for a managed volume that already exists.

Nothing is created and the command does not wait: if the volume is not
exported yet, only a notice is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()

		cfg, client, err := connect()
		if err != nil {
			return err
		}

		vol, err := provision.FetchVolume(context.Background(), client, name)
		if err != nil {
			return err
		}

		if err := output.WriteSummary(out, vol); err != nil {
			return err
		}
		return output.WriteRunbook(out, vol, runbookOptions(cfg, client))
	},
}
