package cli

import (
	"fmt"
	"io"

	"github.com/pkarpov/verbscope/internal/report"
)

// printWritten reports every format's outcome, so a partial failure
// still shows which files made it to disk and why the rest did not.
func printWritten(w io.Writer, written []report.Written) {
	for _, res := range written {
		if res.Err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", res.Format, res.Err)
		} else {
			fmt.Fprintf(w, "✓ Wrote %s\n", res.Path)
		}
	}
}
