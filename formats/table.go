package formats

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/nanotodo/nanotodo/display"
	"github.com/arthur-debert/nanotodo/types"
)

// ShortIDLength is how much of an id the table shows
const ShortIDLength = 8

// Table is the default terminal format: one aligned row per task
var Table = &TaskFormat{
	Name:      "table",
	Extension: ".txt",
	Render: func(w io.Writer, tasks []types.Task, opts RenderOptions) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDONE\tTASK\tDUE\tCREATED\tUPDATED")
		for _, t := range tasks {
			updated := ""
			if display.ShowUpdated(t) {
				updated = display.Relative(t.UpdatedAt, opts.Now)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				ShortID(t.ID),
				checkbox(t.Completed),
				cellText(t.Text),
				display.DueLabel(t, opts.Now),
				display.FormatDateTime(t.CreatedAt, opts.location()),
				updated,
			)
		}
		return tw.Flush()
	},
}

// ShortID truncates an id for display
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// cellReplacer flattens text that would otherwise split a tabwriter cell or row
var cellReplacer = strings.NewReplacer("\r\n", " ", "\t", " ", "\n", " ", "\r", " ")

func cellText(text string) string {
	return cellReplacer.Replace(text)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func init() {
	mustRegister(Table)
}
