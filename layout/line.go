// Package layout groups positioned word tokens into text lines.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Line represents a single line of text on a page
type Line struct {
	// Words are the tokens that make up this line (sorted left to right)
	Words []model.WordToken

	// RawText is the words joined with single spaces
	RawText string

	// Text is RawText after normalization; never empty
	Text string

	// Index is the line's position among emitted lines (0-based, top to bottom)
	Index int

	// RefY is the top of the first word placed in the line. It is fixed by
	// first membership and is the reference every later word is compared to.
	RefY float64

	// Bottom is the bottom edge of the rightmost word
	Bottom float64
}

// X returns the left edge of the line
func (line *Line) X() float64 {
	if line == nil || len(line.Words) == 0 {
		return 0
	}
	return line.Words[0].BBox.X0
}

// LayoutRef returns the block and line index of the leftmost word
func (line *Line) LayoutRef() (block, lineIndex int) {
	if line == nil || len(line.Words) == 0 {
		return 0, 0
	}
	return line.Words[0].Block, line.Words[0].Line
}

// BBox returns the union of the line's word boxes
func (line *Line) BBox() model.BBox {
	if line == nil || len(line.Words) == 0 {
		return model.BBox{}
	}
	bbox := line.Words[0].BBox
	for _, w := range line.Words[1:] {
		bbox = bbox.Union(w.BBox)
	}
	return bbox
}

// WordCount returns the number of whitespace-separated words in Text
func (line *Line) WordCount() int {
	if line == nil || line.Text == "" {
		return 0
	}
	return len(strings.Fields(line.Text))
}

// LineLayout represents the detected line structure of a page
type LineLayout struct {
	// Lines are the emitted lines in reading order (top to bottom)
	Lines []Line

	// MedianHeight is the word height the tolerance was derived from
	MedianHeight float64

	// Tolerance is the vertical distance below which a word joins a line
	Tolerance float64

	// Dropped counts groups whose text normalized to nothing
	Dropped int

	// Config is the configuration used for detection
	Config LineConfig
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// ToleranceRatio is the fraction of the median word height within which
	// a word joins an existing line (default: 0.5)
	ToleranceRatio float64

	// DefaultHeight replaces a non-positive median word height (default: 10)
	DefaultHeight float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		ToleranceRatio: 0.5,
		DefaultHeight:  10.0,
	}
}

// LineDetector detects text lines on a page
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// DetectPage detects lines over all words of a page, using the page's
// median word height. A page without words yields an empty layout.
func (d *LineDetector) DetectPage(page *model.Page) *LineLayout {
	median, ok := page.MedianWordHeight()
	if !ok {
		return &LineLayout{Config: d.config}
	}
	return d.Detect(page.Words, median)
}

// Detect partitions words into lines. Every word ends up in exactly one
// group; groups whose normalized text is empty are counted in Dropped and
// not emitted.
func (d *LineDetector) Detect(words []model.WordToken, medianHeight float64) *LineLayout {
	if medianHeight <= 0 || math.IsNaN(medianHeight) {
		medianHeight = d.config.DefaultHeight
	}
	result := &LineLayout{
		MedianHeight: medianHeight,
		Tolerance:    medianHeight * d.config.ToleranceRatio,
		Config:       d.config,
	}
	if len(words) == 0 {
		return result
	}

	groups := d.groupIntoLines(words, result.Tolerance)
	result.Lines, result.Dropped = d.buildLines(groups)
	return result
}

// lineGroup is a set of words judged co-linear, anchored at the top of
// its first member
type lineGroup struct {
	refY  float64
	words []model.WordToken
}

// groupIntoLines does a single greedy pass over words sorted by top edge.
// A word joins the first open group whose reference Y is closer than
// tolerance, otherwise it opens a new group. First fit wins, so in an
// ambiguous run words attach to the topmost candidate line.
func (d *LineDetector) groupIntoLines(words []model.WordToken, tolerance float64) []*lineGroup {
	sorted := make([]model.WordToken, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y0 < sorted[j].BBox.Y0
	})

	var groups []*lineGroup
	for _, w := range sorted {
		placed := false
		for _, g := range groups {
			if math.Abs(w.BBox.Y0-g.refY) < tolerance {
				g.words = append(g.words, w)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, &lineGroup{refY: w.BBox.Y0, words: []model.WordToken{w}})
		}
	}
	return groups
}

// buildLines orders each group left to right, assembles and normalizes its
// text, and drops groups that normalize to nothing
func (d *LineDetector) buildLines(groups []*lineGroup) ([]Line, int) {
	lines := make([]Line, 0, len(groups))
	dropped := 0

	for _, g := range groups {
		sort.SliceStable(g.words, func(i, j int) bool {
			return g.words[i].BBox.X0 < g.words[j].BBox.X0
		})

		raw := assembleLineText(g.words)
		normalized := text.Normalize(raw)
		if normalized == "" {
			dropped++
			continue
		}

		lines = append(lines, Line{
			Words:   g.words,
			RawText: raw,
			Text:    normalized,
			Index:   len(lines),
			RefY:    g.refY,
			Bottom:  g.words[len(g.words)-1].BBox.Y1,
		})
	}

	return lines, dropped
}

// assembleLineText joins trimmed word texts with single spaces
func assembleLineText(words []model.WordToken) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strings.TrimSpace(w.Text)
	}
	return strings.Join(parts, " ")
}

// LineLayout methods

// LineCount returns the number of detected lines
func (l *LineLayout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// GetLine returns a specific line by index
func (l *LineLayout) GetLine(index int) *Line {
	if l == nil || index < 0 || index >= len(l.Lines) {
		return nil
	}
	return &l.Lines[index]
}

// GetText returns all line texts separated by newlines
func (l *LineLayout) GetText() string {
	if l == nil || len(l.Lines) == 0 {
		return ""
	}
	texts := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// WordTotal returns the number of words across emitted lines
func (l *LineLayout) WordTotal() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, line := range l.Lines {
		n += len(line.Words)
	}
	return n
}
