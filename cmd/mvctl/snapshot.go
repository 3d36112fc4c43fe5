package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Snapshot bracket commands
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Begin or end a managed volume snapshot",
	Long: `Open and close the snapshot window of a managed volume.

Writes made between "snapshot begin" and "snapshot end" are captured as
one point-in-time snapshot. These commands call the same endpoints as the
curl commands printed by "create" and "runbook".`,
}

func init() {
	snapshotCmd.AddCommand(snapshotBeginCmd)
	snapshotCmd.AddCommand(snapshotEndCmd)
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotBeginCmd = &cobra.Command{
	Use:   "begin <managed-volume-name>",
	Short: "Begin a snapshot (make the volume writable)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		_, client, err := connect()
		if err != nil {
			return err
		}

		ctx := context.Background()
		id, err := client.ManagedVolumeID(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to look up managed volume %q: %w", name, err)
		}

		result, err := client.BeginSnapshot(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to begin snapshot on %q: %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Snapshot %s begun on managed volume %s\n", result.SnapshotID, name)
		return nil
	},
}

var snapshotEndCmd = &cobra.Command{
	Use:   "end <managed-volume-name>",
	Short: "End a snapshot (make the volume read only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		_, client, err := connect()
		if err != nil {
			return err
		}

		ctx := context.Background()
		id, err := client.ManagedVolumeID(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to look up managed volume %q: %w", name, err)
		}

		snap, err := client.EndSnapshot(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to end snapshot on %q: %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Snapshot %s taken on managed volume %s", snap.ID, name)
		if snap.Date != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " at %s", snap.Date)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}
