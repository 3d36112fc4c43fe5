package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/jbweber/mvctl/internal/cdm"
	"github.com/jbweber/mvctl/internal/config"
	"github.com/jbweber/mvctl/internal/output"
	"github.com/jbweber/mvctl/internal/provision"
)

var (
	version = "dev"
	commit  = "unknown"
)

// configPath is the --config flag shared by all commands.
var configPath string

func main() {
	defer klog.Flush()

	if err := rootCmd.Execute(); err != nil {
		klog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mvctl",
	Short: "mvctl - Rubrik Managed Volume provisioning tool",
	Long: `mvctl creates Rubrik Managed Volumes and prints the host-side
instructions needed to use them as an NFS backup target.

Connection details and volume parameters are read from a JSON
configuration file (default: config.json in the current directory).`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the configuration file")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(testConnCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <managed-volume-name>",
	Short: "Create a managed volume and print its setup runbook",
	Long: `Create a new managed volume, wait until it is exported, and print:

- /etc/fstab entries for every channel
- mkdir and mount commands for the channel mount points
- RMAN channel allocation directives
- curl commands to begin and end a snapshot

The wait has no timeout; the volume state is checked every poll_interval
(default 30s) until it reports Exported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()

		cfg, client, err := connect()
		if err != nil {
			return err
		}

		ctx := context.Background()

		fmt.Fprintf(out, "Creating managed volume '%s'\n", name)
		if _, err := provision.NewProvisioner(client, cfg).Create(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Managed Volume created Successfully '%s'\n", name)

		vol, err := provision.NewPoller(client, cfg.PollInterval, out).WaitForExport(ctx, name)
		if err != nil {
			return fmt.Errorf("failed waiting for managed volume %q to export: %w", name, err)
		}

		if err := output.WriteSummary(out, vol); err != nil {
			return err
		}
		return output.WriteRunbook(out, vol, runbookOptions(cfg, client))
	},
}

var testConnCmd = &cobra.Command{
	Use:   "test-conn",
	Short: "Test the cluster connection",
	Long:  `Test connectivity and credentials against the cluster and display its version.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		_, client, err := connect()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Testing connection to %s...\n", client.Host())

		info, err := client.ClusterInfo(context.Background())
		if err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}

		fmt.Fprintf(out, "✓ Cluster ID: %s\n", info.ID)
		if info.Name != "" {
			fmt.Fprintf(out, "✓ Cluster name: %s\n", info.Name)
		}
		fmt.Fprintf(out, "✓ Cluster version: %s\n", info.Version)
		fmt.Fprintf(out, "✓ Authenticated with %s credentials\n", client.Auth().Scheme())

		fmt.Fprintln(out, "\nConnection test successful!")
		return nil
	},
}

// connect loads the configuration and builds a cluster client from it.
func connect() (*config.Config, *cdm.Client, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := cdm.NewClient(cdm.Options{
		Host:      cfg.NodeIP,
		Auth:      cfg.Auth,
		VerifySSL: cfg.VerifySSL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cluster client: %w", err)
	}

	klog.V(2).Infof("Using cluster %s with %s auth", cfg.NodeIP, cfg.Auth.Scheme())
	return cfg, client, nil
}

// runbookOptions derives the runbook settings from the configuration.
func runbookOptions(cfg *config.Config, client *cdm.Client) output.RunbookOptions {
	return output.RunbookOptions{
		MountRoot:    cfg.MountPath,
		MountOptions: cfg.MountOptions,
		Host:         client.Host(),
		Auth:         cfg.Auth,
	}
}
