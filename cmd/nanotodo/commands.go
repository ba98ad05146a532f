package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotodo/formats"
	"github.com/arthur-debert/nanotodo/internal/tui"
	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/nanotodo/display"
)

// addAddCommand adds the add command
func (cli *CLI) addAddCommand() {
	var due string

	addCmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Long: `Add a task to the top of the list. The text and a due date are both required.

Examples:
  nanotodo add "Buy groceries" --due 2025-01-10
  nanotodo add Call the bank --due 2025-01-06`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("add task", "", err)
			}
			task, err := coll.Add(cmd.Context(), strings.Join(args, " "), due)
			if err != nil && task.ID == "" {
				return WrapError("add task", "", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (due %s)\n",
				formats.ShortID(task.ID), task.Text, display.FormatDate(task.DueDate))
			return WrapError("add task", task.ID, err)
		},
	}

	addCmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cli.rootCmd.AddCommand(addCmd)
}

// addListCommand adds the list command
func (cli *CLI) addListCommand() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks with the configured filter and ordering. Flags override the
view section of the configuration.

Examples:
  nanotodo list
  nanotodo list --filter active --sort dueDate --order asc
  nanotodo list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := cli.cfg.ViewOptions()
			if err != nil {
				return NewConfigError("list tasks", err)
			}
			format, err := formats.Get(cli.cfg.Format)
			if err != nil {
				return NewConfigError("list tasks", err)
			}
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("list tasks", "", err)
			}

			result := coll.View(view)
			out := cmd.OutOrStdout()
			structured := format.Name == formats.JSON.Name || format.Name == formats.YAML.Name

			if msg := display.EmptyStateMessage(result.EmptyState()); msg != "" && !structured {
				fmt.Fprintln(out, msg)
				return nil
			}
			if err := format.Render(out, result.Tasks, formats.RenderOptions{Now: cli.now()}); err != nil {
				return fmt.Errorf("failed to render tasks: %w", err)
			}
			if summary := display.ShowingSummary(result); summary != "" && !structured {
				fmt.Fprintf(out, "\n%s\n", summary)
			}
			return nil
		},
	}

	flags := listCmd.Flags()
	flags.String("filter", "", "Show all, active or completed tasks")
	flags.String("sort", "", "Sort by createdAt, dueDate or alphabetical")
	flags.String("order", "", "Sort direction (asc|desc)")
	_ = cli.viperInst.BindPFlag("view.filter", flags.Lookup("filter"))
	_ = cli.viperInst.BindPFlag("view.sort", flags.Lookup("sort"))
	_ = cli.viperInst.BindPFlag("view.order", flags.Lookup("order"))

	cli.rootCmd.AddCommand(listCmd)
}

// addToggleCommand adds the toggle command
func (cli *CLI) addToggleCommand() {
	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed, or active again",
		Long: `Flip the completion flag of a task. Any unique prefix of the ID is accepted.

Examples:
  nanotodo toggle 3f2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("toggle task", args[0], err)
			}
			id, err := cli.resolve("toggle task", coll, args[0])
			if err != nil {
				return err
			}
			task, err := coll.Toggle(cmd.Context(), id)
			if err != nil && task.ID == "" {
				return WrapError("toggle task", args[0], err)
			}
			state := "active"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s: %s\n", formats.ShortID(task.ID), state, task.Text)
			return WrapError("toggle task", args[0], err)
		},
	}

	cli.rootCmd.AddCommand(toggleCmd)
}

// addEditCommand adds the edit command
func (cli *CLI) addEditCommand() {
	var text, due string

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the text or due date of a task",
		Long: `Change the text and/or due date of a task. Values that are not given are kept.

Examples:
  nanotodo edit 3f2a --text "Buy groceries and milk"
  nanotodo edit 3f2a --due 2025-01-12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("text") && !cmd.Flags().Changed("due") {
				return &CLIError{
					Operation:   "edit task",
					Cause:       "nothing to change",
					Suggestions: []string{"Pass --text and/or --due"},
				}
			}
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("edit task", args[0], err)
			}
			id, err := cli.resolve("edit task", coll, args[0])
			if err != nil {
				return err
			}
			current, _ := coll.Get(id)
			newText, newDue := current.Text, current.DueDate
			if cmd.Flags().Changed("text") {
				newText = text
			}
			if cmd.Flags().Changed("due") {
				newDue = due
			}

			task, err := coll.Edit(cmd.Context(), id, newText, newDue)
			if err != nil && task.ID == "" {
				return WrapError("edit task", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s (due %s)\n",
				formats.ShortID(task.ID), task.Text, display.FormatDate(task.DueDate))
			return WrapError("edit task", args[0], err)
		},
	}

	editCmd.Flags().StringVar(&text, "text", "", "New task text")
	editCmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cli.rootCmd.AddCommand(editCmd)
}

// addDeleteCommand adds the delete command
func (cli *CLI) addDeleteCommand() {
	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("delete task", args[0], err)
			}
			id, err := cli.resolve("delete task", coll, args[0])
			if err != nil {
				return err
			}
			task, _ := coll.Get(id)
			removed, err := coll.Delete(cmd.Context(), id)
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", formats.ShortID(id), task.Text)
			}
			return WrapError("delete task", args[0], err)
		},
	}

	cli.rootCmd.AddCommand(deleteCmd)
}

// addStatsCommand adds the stats command
func (cli *CLI) addStatsCommand() {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("show stats", "", err)
			}
			printStats(cmd.OutOrStdout(), coll.Stats())
			return nil
		},
	}

	cli.rootCmd.AddCommand(statsCmd)
}

const progressBarWidth = 20

func printStats(w io.Writer, s nanotodo.Stats) {
	fmt.Fprintf(w, "Progress:  %s %s (%d%%)\n",
		display.ProgressBar(s.Completed, s.Total, progressBarWidth),
		display.Progress(s.Completed, s.Total),
		s.Percent)
	fmt.Fprintf(w, "Total:     %s\n", display.Count(s.Total))
	fmt.Fprintf(w, "Completed: %s\n", display.Count(s.Completed))
	fmt.Fprintf(w, "Active:    %s\n", display.Count(s.Active))
	fmt.Fprintf(w, "Overdue:   %s\n", display.Count(s.Overdue))
}

// addTUICommand adds the interactive UI command
func (cli *CLI) addTUICommand() {
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Long: `Open a full-screen task list.

Keys:
  a      add a task          space  toggle the selected task
  e      edit the selected   d      delete the selected (y/n)
  f      cycle the filter    s      cycle the sort key
  o      flip the order      q      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := cli.cfg.ViewOptions()
			if err != nil {
				return NewConfigError("start tui", err)
			}
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("start tui", "", err)
			}
			return tui.Run(cmd.Context(), coll, view, tui.WithClock(cli.now))
		},
	}

	cli.rootCmd.AddCommand(tuiCmd)
}
