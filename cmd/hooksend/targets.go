package main

import (
	"fmt"

	"hooksend/internal/target"
	"hooksend/pkg/fileutil"

	"github.com/spf13/cobra"
)

var targetsConfigFile string

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List configured webhook targets",
	Long: `List the named webhook targets from targets.yaml.

Targets let you send with only a SHA:
  hooksend --target staging abc1234567890`,
	RunE:          runTargets,
}

func init() {
	targetsCmd.Flags().StringVarP(&targetsConfigFile, "config", "c", "", "Path to targets.yaml configuration file")
}

func runTargets(cmd *cobra.Command, args []string) error {
	path := targetsConfigFile
	if path == "" {
		path = fileutil.FindConfigOptional("targets.yaml")
		if path == "" {
			return fmt.Errorf("no targets.yaml found; use --config to specify one")
		}
	}

	targets, err := target.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry := target.NewRegistry(targets)

	if registry.Count() == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No targets configured in %s\n", path)
		return nil
	}

	for _, name := range registry.List() {
		tgt, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s  %-30s  %s\n", name, tgt.HookID, tgt.URL)
	}

	return nil
}
