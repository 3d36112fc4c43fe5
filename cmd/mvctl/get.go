package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/mvctl/internal/cdm"
	"github.com/jbweber/mvctl/internal/output"
	"github.com/jbweber/mvctl/internal/provision"
)

var (
	outputFormat string
	noHeaders    bool
)

func init() {
	for _, cmd := range []*cobra.Command{getCmd, listCmd} {
		cmd.Flags().StringVarP(&outputFormat, "output", "o", string(output.FormatTable), "output format (table, yaml, json)")
		cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row in table output")
	}

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <managed-volume-name>",
	Short: "Get details about a managed volume",
	Long: `Get the current descriptor of a managed volume by name.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   Full YAML descriptor
  -o json   Full JSON descriptor`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// Validate output format
		if err := output.ValidateFormat(outputFormat); err != nil {
			return err
		}

		_, client, err := connect()
		if err != nil {
			return err
		}

		vol, err := provision.FetchVolume(context.Background(), client, name)
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(outputFormat),
			NoHeaders: noHeaders,
		})
		if err != nil {
			return err
		}

		result, err := formatter.FormatVolume(vol)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), result)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [name-filter]",
	Short: "List managed volumes",
	Long: `List managed volumes on the cluster.

An optional argument filters by name; the cluster matches substrings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter string
		if len(args) == 1 {
			filter = args[0]
		}

		if err := output.ValidateFormat(outputFormat); err != nil {
			return err
		}

		_, client, err := connect()
		if err != nil {
			return err
		}

		vols, err := client.ListManagedVolumes(context.Background(), filter)
		if err != nil {
			return fmt.Errorf("failed to list managed volumes: %w", err)
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(outputFormat),
			NoHeaders: noHeaders,
		})
		if err != nil {
			return err
		}

		ptrs := make([]*cdm.ManagedVolume, len(vols))
		for i := range vols {
			ptrs[i] = &vols[i]
		}

		result, err := formatter.FormatVolumeList(ptrs)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), result)
		return nil
	},
}
