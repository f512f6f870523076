package pages

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/pdfoutline/features"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
)

// ErrStreamClosed is reported by a stream advanced after Close
var ErrStreamClosed = errors.New("page stream is closed")

// SkipReason says why a page produced no batch
type SkipReason int

const (
	// SkipLoadFailed means the source could not load the page
	SkipLoadFailed SkipReason = iota
	// SkipNoDimensions means the page has zero width or height
	SkipNoDimensions
	// SkipNoWords means the page has no word tokens
	SkipNoWords
	// SkipNoLines means no line survived normalization and feature computation
	SkipNoLines
)

// String returns a human-readable representation of the skip reason
func (r SkipReason) String() string {
	switch r {
	case SkipLoadFailed:
		return "load failed"
	case SkipNoDimensions:
		return "no dimensions"
	case SkipNoWords:
		return "no words"
	case SkipNoLines:
		return "no lines"
	default:
		return "unknown"
	}
}

// Skip records a page that produced no batch
type Skip struct {
	Page   int // 1-indexed
	Reason SkipReason
	Err    error // set for SkipLoadFailed
}

// String returns a one-line description of the skip
func (s Skip) String() string {
	if s.Err != nil {
		return fmt.Sprintf("page %d skipped (%s): %v", s.Page, s.Reason, s.Err)
	}
	return fmt.Sprintf("page %d skipped (%s)", s.Page, s.Reason)
}

// Batch is the feature records of one page, in reading order
type Batch struct {
	Page    int // 1-indexed
	Records []model.FeatureRecord

	// Dropped counts lines that normalized to nothing or failed feature computation
	Dropped int
}

// StreamConfig holds configuration for a page stream
type StreamConfig struct {
	// PageLimit caps the pages read; values outside (0, PageLimit] use PageLimit
	PageLimit int

	// Line configures line detection on each page (zero value = layout.DefaultLineConfig())
	Line layout.LineConfig

	// Logger receives skip and drop events at debug level (nil = slog.Default())
	Logger *slog.Logger
}

// DefaultStreamConfig returns sensible default configuration
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		PageLimit: PageLimit,
		Line:      layout.DefaultLineConfig(),
	}
}

// Stream produces one Batch per usable page of a source, lazily and in
// page order. It holds one page at a time: each page is released before
// the next is loaded. A stream is consumed once; start over by opening the
// document again.
//
//	stream := pages.NewStream(src)
//	defer stream.Close()
//	for stream.Next() {
//	    batch := stream.Batch()
//	    ...
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	source   Source
	detector *layout.LineDetector
	logger   *slog.Logger

	limit   int
	next    int
	current Batch
	skips   []Skip
	err     error
	done    bool
	closed  bool
}

// NewStream creates a stream with default configuration
func NewStream(source Source) *Stream {
	return NewStreamWithConfig(source, DefaultStreamConfig())
}

// NewStreamWithConfig creates a stream with custom configuration
func NewStreamWithConfig(source Source, config StreamConfig) *Stream {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := config.PageLimit
	if limit <= 0 || limit > PageLimit {
		limit = PageLimit
	}
	if count := source.PageCount(); count < limit {
		limit = count
	}

	lineConfig := config.Line
	if lineConfig == (layout.LineConfig{}) {
		lineConfig = layout.DefaultLineConfig()
	}

	return &Stream{
		source:   source,
		detector: layout.NewLineDetectorWithConfig(lineConfig),
		logger:   logger.With("component", "pages"),
		limit:    limit,
	}
}

// Limit returns the number of pages the stream will visit
func (s *Stream) Limit() int {
	return s.limit
}

// Next advances to the next page that yields records. It returns false
// when the pages are exhausted or the stream is closed; the source is
// closed once the last page has been visited.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	if s.closed {
		s.err = ErrStreamClosed
		return false
	}

	for s.next < s.limit {
		index := s.next
		s.next++

		batch, ok := s.processPage(index)
		if ok {
			s.current = batch
			return true
		}
	}

	s.done = true
	s.current = Batch{}
	if err := s.Close(); err != nil && s.err == nil {
		s.err = err
	}
	return false
}

// processPage loads, analyzes and releases one page
func (s *Stream) processPage(index int) (Batch, bool) {
	number := index + 1

	page, err := s.loadPage(index)
	if err != nil {
		s.skip(Skip{Page: number, Reason: SkipLoadFailed, Err: err})
		return Batch{}, false
	}
	defer page.Release()

	if !page.HasDimensions() {
		s.skip(Skip{Page: number, Reason: SkipNoDimensions})
		return Batch{}, false
	}
	if len(page.Words) == 0 {
		s.skip(Skip{Page: number, Reason: SkipNoWords})
		return Batch{}, false
	}

	lines := s.detector.DetectPage(page)

	ctx := features.NewPageContext(page)
	ctx.Number = number
	records, failed := features.ComputePage(ctx, lines.Lines)

	dropped := lines.Dropped + failed
	if dropped > 0 {
		s.logger.Debug("dropped lines", "page", number, "empty", lines.Dropped, "failed", failed)
	}
	if len(records) == 0 {
		s.skip(Skip{Page: number, Reason: SkipNoLines})
		return Batch{}, false
	}

	return Batch{Page: number, Records: records, Dropped: dropped}, true
}

// loadPage loads a page, converting a nil page into an error
func (s *Stream) loadPage(index int) (*model.Page, error) {
	page, err := s.source.LoadPage(index)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("source returned no page for index %d", index)
	}
	return page, nil
}

func (s *Stream) skip(sk Skip) {
	s.skips = append(s.skips, sk)
	if sk.Err != nil {
		s.logger.Debug("skipped page", "page", sk.Page, "reason", sk.Reason.String(), "error", sk.Err)
		return
	}
	s.logger.Debug("skipped page", "page", sk.Page, "reason", sk.Reason.String())
}

// Batch returns the current page's records. Valid after Next returns true.
func (s *Stream) Batch() Batch {
	return s.current
}

// Skips returns the pages skipped so far
func (s *Stream) Skips() []Skip {
	return s.skips
}

// Err returns the first error that stopped the stream early
func (s *Stream) Err() error {
	return s.err
}

// Close releases the source. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.current = Batch{}
	if err := s.source.Close(); err != nil {
		return fmt.Errorf("closing page source: %w", err)
	}
	return nil
}

// Collect drains the stream and returns every batch
func (s *Stream) Collect() ([]Batch, error) {
	var batches []Batch
	for s.Next() {
		batches = append(batches, s.Batch())
	}
	return batches, s.Err()
}
