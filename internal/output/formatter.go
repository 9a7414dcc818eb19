package output

import (
	"io"

	"github.com/chrwm/OSEMF-Comparison/internal/energy"
)

// Formatter defines the interface for outputting diagnostics.
type Formatter interface {
	Format(w io.Writer, diagnostics []energy.Diagnostic) error
}
