package pdfoutline

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/outline"
	"github.com/tsawler/pdfoutline/pages"
	"github.com/tsawler/pdfoutline/reader"
)

// Extractor provides a fluent interface for extracting an outline from a
// PDF. Each configuration method returns a new Extractor instance, so a
// configured Extractor can be shared and extended safely.
type Extractor struct {
	// Source: a file to open, or a source supplied by the caller
	filename string
	source   pages.Source

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a copy of options.
// Each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MaxPages limits how many pages are read from the start of the document.
// Values outside 1..pages.PageLimit read up to pages.PageLimit pages.
//
// Example:
//
//	doc, _, err := pdfoutline.Open("doc.pdf").MaxPages(10).Outline()
func (e *Extractor) MaxPages(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxPages = n
	return newExt
}

// LineTolerance sets how far apart, as a fraction of the page's median
// word height, two words' tops may be and still share a line. The
// default is 0.5.
//
// Example:
//
//	doc, _, err := pdfoutline.Open("doc.pdf").LineTolerance(0.3).Outline()
func (e *Extractor) LineTolerance(ratio float64) *Extractor {
	newExt := e.clone()
	newExt.options.lineTolerance = ratio
	return newExt
}

// WithClassifier sets the classifier that labels each line. Passing nil
// restores the built-in heuristic classifier.
//
// Example:
//
//	doc, _, err := pdfoutline.Open("doc.pdf").WithClassifier(model).Outline()
func (e *Extractor) WithClassifier(c outline.Classifier) *Extractor {
	newExt := e.clone()
	newExt.options.classifier = c
	return newExt
}

// WithLogger sets the logger for skip, drop and failure events. Without
// one, slog.Default() is used.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Stream opens the document and returns the lazy page stream over it. The
// caller should Close the stream if it stops before the pages run out.
//
// Example:
//
//	stream, err := pdfoutline.Open("doc.pdf").Stream()
//	if err != nil {
//	    // handle error
//	}
//	defer stream.Close()
//	for stream.Next() {
//	    batch := stream.Batch()
//	    ...
//	}
func (e *Extractor) Stream() (*pages.Stream, error) {
	src, err := e.openSource()
	if err != nil {
		e.logger().Warn("failed to open document", "file", e.filename, "error", err)
		return nil, err
	}
	return pages.NewStreamWithConfig(src, e.streamConfig()), nil
}

// Features returns the feature records of every usable page, one batch
// per page in page order. Pages that produced nothing are reported as
// warnings.
func (e *Extractor) Features() ([]pages.Batch, []Warning, error) {
	stream, err := e.Stream()
	if err != nil {
		return nil, nil, err
	}
	defer stream.Close()

	var batches []pages.Batch
	for stream.Next() {
		batches = append(batches, stream.Batch())
	}

	return batches, e.streamWarnings(stream), nil
}

// Outline extracts the document outline: every page's lines are
// labelled by the classifier, then the title is selected and the headings
// collected in reading order.
//
// Only a document that cannot be opened is an error; in that case the
// returned outline is empty. Pages or batches that fail are left out and
// reported as warnings.
//
// Example:
//
//	doc, warnings, err := pdfoutline.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfoutline.FormatWarnings(warnings))
//	}
func (e *Extractor) Outline() (*model.DocumentOutline, []Warning, error) {
	stream, err := e.Stream()
	if err != nil {
		return model.NewDocumentOutline(), nil, err
	}
	defer stream.Close()

	classifier := e.classifier()
	logger := e.logger()

	var labelled []model.LabeledRecord
	var rejected []Warning
	for stream.Next() {
		batch := stream.Batch()
		records, err := outline.LabelBatch(classifier, batch.Records)
		if err != nil {
			logger.Warn("classifier failed, skipping page", "page", batch.Page, "records", len(batch.Records), "error", err)
			rejected = append(rejected, Warning{
				Type:    WarningBatchRejected,
				Page:    batch.Page,
				Message: "classification failed",
				Err:     err,
			})
			continue
		}
		labelled = append(labelled, records...)
	}

	warnings := append(e.streamWarnings(stream), rejected...)
	return outline.Assemble(labelled), warnings, nil
}

// ============================================================================
// Helpers
// ============================================================================

// openSource returns the caller's source or opens the file
func (e *Extractor) openSource() (pages.Source, error) {
	if e.source != nil {
		return e.source, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	r, err := reader.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return r, nil
}

func (e *Extractor) streamConfig() pages.StreamConfig {
	config := pages.DefaultStreamConfig()
	config.PageLimit = e.options.maxPages
	if e.options.lineTolerance > 0 {
		config.Line.ToleranceRatio = e.options.lineTolerance
	}
	config.Logger = e.options.logger
	return config
}

// streamWarnings collects skipped pages and a failed close
func (e *Extractor) streamWarnings(stream *pages.Stream) []Warning {
	warnings := skipWarnings(stream.Skips())
	if err := stream.Err(); err != nil {
		warnings = append(warnings, Warning{
			Type:    WarningSourceClose,
			Message: "closing document",
			Err:     err,
		})
	}
	return warnings
}

func (e *Extractor) classifier() outline.Classifier {
	if e.options.classifier != nil {
		return e.options.classifier
	}
	return outline.NewHeuristicClassifier()
}

func (e *Extractor) logger() *slog.Logger {
	logger := e.options.logger
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", "pdfoutline")
}
