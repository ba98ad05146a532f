package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/nanotodo/nanotodo/display"
	"github.com/arthur-debert/nanotodo/types"
)

// Markdown renders a GitHub-style checklist:
//
//	- [ ] Buy milk (due 2025/01/02, overdue)
var Markdown = &TaskFormat{
	Name:      "markdown",
	Extension: ".md",
	Render: func(w io.Writer, tasks []types.Task, opts RenderOptions) error {
		var b strings.Builder
		for _, t := range tasks {
			b.WriteString("- ")
			b.WriteString(checkbox(t.Completed))
			b.WriteString(" ")
			b.WriteString(escapeMarkdown(t.Text))
			if t.HasDueDate() {
				fmt.Fprintf(&b, " (due %s", display.FormatDate(t.DueDate))
				if display.IsOverdue(t, opts.Now) {
					b.WriteString(", overdue")
				}
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	},
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func init() {
	mustRegister(Markdown)
}
