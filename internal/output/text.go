package output

import (
	"fmt"
	"io"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
)

// TextFormatter outputs diagnostics in human-readable text format.
// When Color is true, the model location is printed in cyan and the rule ID in yellow.
type TextFormatter struct {
	Color bool
}

// Format writes each diagnostic as a single line in the pattern:
// model:node rule message
func (f *TextFormatter) Format(w io.Writer, diagnostics []energy.Diagnostic) error {
	for _, d := range diagnostics {
		loc := d.Model
		if d.Node != "" {
			loc += ":" + d.Node
		}
		var err error
		if f.Color {
			// location in cyan, rule in yellow
			_, err = fmt.Fprintf(w, "\033[36m%s\033[0m \033[33m%s\033[0m %s\n",
				loc, d.RuleID, d.Message)
		} else {
			_, err = fmt.Fprintf(w, "%s %s %s\n", loc, d.RuleID, d.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
