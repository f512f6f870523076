package pdfoutline

import (
	"log/slog"

	"github.com/tsawler/pdfoutline/outline"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Pages read from the start of the document (0 = pages.PageLimit)
	maxPages int

	// Line grouping tolerance as a fraction of the median word height (0 = default)
	lineTolerance float64

	// Labels each line; nil means the heuristic classifier
	classifier outline.Classifier

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		maxPages:      0,
		lineTolerance: 0,
		classifier:    nil,
		logger:        nil,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		maxPages:      o.maxPages,
		lineTolerance: o.lineTolerance,
		classifier:    o.classifier,
		logger:        o.logger,
	}
}
