package lib

import (
	"fmt"
	"strings"
)

// Output truncation caps. Build and flash errors surface at the end of the
// log, so truncation keeps the tail.
const (
	tailLinesFailure = 60
	tailLinesSuccess = 20
)

// Format renders a command result as a bounded text report.
func Format(res Result, label string) string {
	var out []string

	if res.OK {
		out = append(out, fmt.Sprintf("=== %s: OK ===", label))
	} else {
		out = append(out, fmt.Sprintf("=== %s: FAILED (exit %d) ===", label, res.ExitCode))
	}

	limit := tailLinesSuccess
	if !res.OK {
		limit = tailLinesFailure
	}

	if stdout := strings.TrimSpace(res.Stdout); stdout != "" {
		out = append(out, tailLines(stdout, limit))
	}
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		out = append(out, "--- stderr ---")
		out = append(out, tailLines(stderr, tailLinesFailure))
	}

	return strings.Join(out, "\n")
}

// tailLines keeps the last max lines of text, prefixing an omission marker
// when anything was dropped.
func tailLines(text string, max int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= max {
		return text
	}
	omitted := len(lines) - max
	kept := lines[len(lines)-max:]
	return fmt.Sprintf("[omitted %d lines]\n%s", omitted, strings.Join(kept, "\n"))
}
