package pdfoutline

import (
	"fmt"
	"strings"

	"github.com/tsawler/pdfoutline/pages"
)

// WarningType identifies the kind of non-fatal problem
type WarningType int

const (
	// WarningPageSkipped means a page produced no lines and was left out
	WarningPageSkipped WarningType = iota

	// WarningBatchRejected means the classifier failed on a page, so none
	// of that page's lines could be labelled
	WarningBatchRejected

	// WarningSourceClose means the document could not be closed cleanly
	WarningSourceClose
)

// String returns a short name for the warning type
func (t WarningType) String() string {
	switch t {
	case WarningPageSkipped:
		return "page skipped"
	case WarningBatchRejected:
		return "batch rejected"
	case WarningSourceClose:
		return "source close"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal problem met while extracting an outline. The
// result is still usable; it may just be missing the affected pages.
type Warning struct {
	Type    WarningType
	Page    int // 1-indexed; 0 when not tied to a page
	Message string
	Err     error
}

// String formats the warning for display
func (w Warning) String() string {
	var sb strings.Builder
	if w.Page > 0 {
		fmt.Fprintf(&sb, "page %d: ", w.Page)
	}
	sb.WriteString(w.Message)
	if w.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(w.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error, if any
func (w Warning) Unwrap() error {
	return w.Err
}

// FormatWarnings joins warnings into one line each
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// skipWarnings converts the pages a stream skipped into warnings
func skipWarnings(skips []pages.Skip) []Warning {
	var warnings []Warning
	for _, sk := range skips {
		warnings = append(warnings, Warning{
			Type:    WarningPageSkipped,
			Page:    sk.Page,
			Message: "skipped (" + sk.Reason.String() + ")",
			Err:     sk.Err,
		})
	}
	return warnings
}
