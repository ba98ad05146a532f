package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotodo/formats"
	"github.com/arthur-debert/nanotodo/nanotodo/display"
	"github.com/arthur-debert/nanotodo/search"
)

// addSearchCommand adds the search command
func (cli *CLI) addSearchCommand() {
	var (
		options search.Options
		fields  []string
	)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find tasks by text or due date",
		Long: `Search task text and due dates, best match first. The configured filter
applies, so completed tasks are skipped when the view shows active tasks only.

Examples:
  nanotodo search groceries
  nanotodo search 2025-01 --field dueDate
  nanotodo search "code review" --exact --highlight`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := cli.cfg.ViewOptions()
			if err != nil {
				return NewConfigError("search", err)
			}
			for _, f := range fields {
				switch search.Field(f) {
				case search.FieldText, search.FieldDueDate:
					options.Fields = append(options.Fields, search.Field(f))
				default:
					return &CLIError{
						Operation:   "search",
						Cause:       fmt.Sprintf("unknown field %q", f),
						Suggestions: []string{"Use --field text or --field dueDate"},
					}
				}
			}
			coll, err := cli.openCollection(cmd.Context())
			if err != nil {
				return WrapError("search", "", err)
			}

			options.Query = strings.Join(args, " ")
			results, err := search.SearchCollection(coll, options, view)
			if err != nil {
				return WrapError("search", "", err)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No tasks match %q\n", options.Query)
				return nil
			}
			now := cli.now()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, r := range results {
				text := r.Task.Text
				if h, ok := r.Highlights[search.FieldText]; ok {
					text = h
				}
				done := "[ ]"
				if r.Task.Completed {
					done = "[x]"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n",
					formats.ShortID(r.Task.ID), done, text, display.DueLabel(r.Task, now), r.Score)
			}
			return tw.Flush()
		},
	}

	flags := searchCmd.Flags()
	flags.StringSliceVar(&fields, "field", nil, "Fields to search (text, dueDate); all when omitted")
	flags.BoolVar(&options.CaseSensitive, "case-sensitive", false, "Match case exactly")
	flags.BoolVar(&options.ExactMatch, "exact", false, "Require the whole field to match")
	flags.BoolVar(&options.EnableHighlight, "highlight", false, "Mark matches in the text")
	flags.IntVar(&options.MaxResults, "limit", 0, "Show at most this many results")

	cli.rootCmd.AddCommand(searchCmd)
}
