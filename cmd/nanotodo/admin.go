package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotodo/internal/config"
	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/nanotodo/migration"
)

// addMigrateCommand adds the migrate command
func (cli *CLI) addMigrateCommand() {
	var dryRun bool

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite stored tasks in the current schema",
		Long: `Records written by older versions may lack an updated timestamp or a due
date. They are normalized on every load; migrate writes the normalized form
back so the stored data matches the current schema.

Examples:
  nanotodo migrate --dry-run
  nanotodo migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, err := cli.openBridge()
			if err != nil {
				return WrapError("migrate", "", err)
			}
			tasks, result, err := bridge.LoadWithResult(cmd.Context())
			if err != nil {
				return WrapError("migrate", "", err)
			}

			out := cmd.OutOrStdout()
			verbose := cli.viperInst.GetBool("verbose")
			if result == nil {
				fmt.Fprintf(out, "No readable tasks stored under key %q\n", bridge.Key())
				return nil
			}
			for _, msg := range result.Messages {
				printMessage(out, cmd.ErrOrStderr(), msg, verbose)
			}

			if result.Changed() && !dryRun {
				coll := nanotodo.New(bridge, cli.collectionOptions()...)
				if err := coll.Replace(cmd.Context(), tasks); err != nil {
					return NewStoreError("migrate", err, CommonSuggestions.CheckPerms, CommonSuggestions.TryDryRun)
				}
			}

			printSummary(out, result, dryRun)
			return nil
		},
	}

	migrateCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview changes without applying them")
	cli.rootCmd.AddCommand(migrateCmd)
}

// printMessage prints a message with appropriate formatting based on level
func printMessage(out, errOut io.Writer, msg migration.Message, verbose bool) {
	switch msg.Level {
	case migration.LevelWarning:
		fmt.Fprintf(errOut, "WARN: %s\n", msg.Text)
	case migration.LevelInfo:
		fmt.Fprintf(out, "%s\n", msg.Text)
	case migration.LevelDebug:
		if verbose {
			fmt.Fprintf(out, "DEBUG: %s\n", msg.Text)
		}
	}

	if verbose && msg.Details != nil {
		for k, v := range msg.Details {
			fmt.Fprintf(out, "  %s: %v\n", k, v)
		}
	}
}

func printSummary(out io.Writer, result *migration.Result, dryRun bool) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Migration completed successfully\n")
	if result.Stats.TotalTasks > 0 {
		fmt.Fprintf(out, "  Modified: %d/%d tasks\n", result.Stats.ModifiedTasks, result.Stats.TotalTasks)
		if n := len(result.Warnings()); n > 0 {
			fmt.Fprintf(out, "  Warnings: %d\n", n)
		}
		fmt.Fprintf(out, "  Duration: %v\n", result.Stats.Duration)
	}
	if dryRun {
		fmt.Fprintf(out, "  (DRY RUN - no changes applied)\n")
	}
}

// addConfigCommand adds the config command group
func (cli *CLI) addConfigCommand() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	showCmd := &cobra.Command{
		Use:         "show",
		Short:       "Print the resolved configuration as YAML",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenient: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(cli.cfg)
			if err != nil {
				return NewConfigError("show config", err)
			}
			out := cmd.OutOrStdout()
			if used := config.UsedFile(cli.viperInst); used != "" {
				fmt.Fprintf(out, "# config file: %s\n", used)
			} else {
				fmt.Fprintf(out, "# no config file found, using defaults and environment\n")
			}
			_, err = out.Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write a default configuration file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationLenient: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path, force); err != nil {
				return NewConfigError("write config", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(showCmd, initCmd)
	cli.rootCmd.AddCommand(configCmd)
}
