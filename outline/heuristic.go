package outline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tsawler/pdfoutline/model"
)

// decimalPrefix captures a leading "1", "1.2" or "1.2.3" section number
var decimalPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s`)

// HeuristicConfig holds configuration for rule-based heading labelling
type HeuristicConfig struct {
	// FontSizeRatios are the minimum font size ratios (line size / page
	// average) for each heading level, H1 first.
	// Default: 1.8, 1.5, 1.3, 1.15, 1.1, 1.05
	FontSizeRatios []float64

	// BoldIndicatesHeading treats bold text as a heading indicator
	BoldIndicatesHeading bool

	// AllCapsIndicatesHeading treats all caps text as a heading indicator
	AllCapsIndicatesHeading bool

	// MaxWords is the longest line, in words, that can be a heading
	// Default: 20
	MaxWords int

	// MinConfidence is the minimum confidence to label a line as a heading
	// Default: 0.5
	MinConfidence float64
}

// DefaultHeuristicConfig returns sensible default configuration
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		FontSizeRatios: []float64{
			1.8,  // H1: 80% larger than the page average
			1.5,  // H2
			1.3,  // H3
			1.15, // H4
			1.1,  // H5
			1.05, // H6
		},
		BoldIndicatesHeading:    true,
		AllCapsIndicatesHeading: true,
		MaxWords:                20,
		MinConfidence:           0.5,
	}
}

// HeuristicClassifier labels lines from their feature records alone, using
// font size, weight, capitalization and numbering. It stands in for a
// trained model and is deterministic.
type HeuristicClassifier struct {
	config HeuristicConfig
}

// NewHeuristicClassifier creates a heuristic classifier with default configuration
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{
		config: DefaultHeuristicConfig(),
	}
}

// NewHeuristicClassifierWithConfig creates a heuristic classifier with custom configuration
func NewHeuristicClassifierWithConfig(config HeuristicConfig) *HeuristicClassifier {
	return &HeuristicClassifier{
		config: config,
	}
}

// Classify returns a heading label ("H1".."Hn") or model.LabelNone
func (h *HeuristicClassifier) Classify(record model.FeatureRecord) (string, error) {
	if h.Confidence(record) < h.config.MinConfidence {
		return model.LabelNone, nil
	}
	return model.HeadingLabelPrefix + strconv.Itoa(h.level(record)), nil
}

// Confidence returns a score from 0 to 1 for the record being a heading
func (h *HeuristicClassifier) Confidence(record model.FeatureRecord) float64 {
	if record.WordCount == 0 || (h.config.MaxWords > 0 && record.WordCount > h.config.MaxWords) {
		return 0
	}
	// Page numbers, dates and figures
	if record.IsMostlyDigits == 1 {
		return 0
	}

	confidence := 0.0

	// Font size is the strongest indicator
	ratio := record.RelativeFontSize
	switch {
	case ratio >= 1.5:
		confidence += 0.5
	case ratio >= 1.2:
		confidence += 0.35
	case ratio >= 1.1:
		confidence += 0.2
	case ratio >= 1.05:
		confidence += 0.1
	}

	if record.IsBold == 1 && h.config.BoldIndicatesHeading {
		confidence += 0.2
	}

	// is_all_caps is also set for text without letters, so require a few
	if record.IsAllCaps == 1 && h.config.AllCapsIndicatesHeading && countLetters(record.Text) >= 3 {
		confidence += 0.15
	}

	if record.StartsWithNumbering == 1 {
		confidence += 0.2
	}

	// Headings are short single lines
	if record.WordCount <= 10 {
		confidence += 0.1
	} else {
		confidence += 0.05
	}
	confidence += 0.1

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// level picks the heading depth: from a decimal section number when there
// is one, else from the font size ratio, else the deepest level
func (h *HeuristicClassifier) level(record model.FeatureRecord) int {
	maxLevel := len(h.config.FontSizeRatios)
	if maxLevel == 0 {
		maxLevel = 1
	}

	if m := decimalPrefix.FindStringSubmatch(strings.TrimSpace(record.Text)); m != nil {
		level := strings.Count(m[1], ".") + 1
		if level > maxLevel {
			level = maxLevel
		}
		return level
	}

	for i, ratio := range h.config.FontSizeRatios {
		if record.RelativeFontSize >= ratio {
			return i + 1
		}
	}

	return maxLevel
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
