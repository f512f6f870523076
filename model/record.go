package model

import "strings"

// LabelNone is the label a classifier assigns to a line that is not a heading
const LabelNone = "O"

// HeadingLabelPrefix starts every heading-level label ("H1", "H2", ...)
const HeadingLabelPrefix = "H"

// FeatureRecord is the feature vector for one detected text line.
// Flags are 0 or 1 so the record can be fed to a numeric classifier as is.
type FeatureRecord struct {
	Text string `json:"text"`
	Page int    `json:"page"` // 1-indexed

	FontSize         float64 `json:"font_size"`
	IsBold           int     `json:"is_bold"`
	RelativeFontSize float64 `json:"relative_font_size"`

	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Y1    float64 `json:"y1"`
	XNorm float64 `json:"x_norm"`
	YNorm float64 `json:"y_norm"`

	EndsWithColon       int `json:"ends_with_colon"`
	StartsWithNumbering int `json:"starts_with_numbering"`
	WordCount           int `json:"word_count"`
	CharCount           int `json:"char_count"`
	IsAllCaps           int `json:"is_all_caps"`
	IsMostlyDigits      int `json:"is_mostly_digits"`

	// Deltas against the previous emitted line on the same page; zero for
	// the first line of a page.
	YGapFromPrev     float64 `json:"y_gap_from_prev"`
	XDiffFromPrev    float64 `json:"x_diff_from_prev"`
	FontDiffFromPrev float64 `json:"font_diff_from_prev"`
}

// FeatureNames is the fixed column order a classifier consumes
var FeatureNames = []string{
	"font_size", "is_bold", "x", "y", "x_norm", "y_norm", "page", "is_title",
	"relative_font_size", "is_all_caps", "is_mostly_digits", "word_count", "char_count",
	"y_gap_from_prev", "x_diff_from_prev", "font_diff_from_prev",
	"ends_with_colon", "starts_with_numbering",
}

// Feature returns the named column value and whether the name is known.
// is_title is always 0 on a bare FeatureRecord.
func (r FeatureRecord) Feature(name string) (float64, bool) {
	switch name {
	case "font_size":
		return r.FontSize, true
	case "is_bold":
		return float64(r.IsBold), true
	case "x":
		return r.X, true
	case "y":
		return r.Y, true
	case "y1":
		return r.Y1, true
	case "x_norm":
		return r.XNorm, true
	case "y_norm":
		return r.YNorm, true
	case "page":
		return float64(r.Page), true
	case "is_title":
		return 0, true
	case "relative_font_size":
		return r.RelativeFontSize, true
	case "is_all_caps":
		return float64(r.IsAllCaps), true
	case "is_mostly_digits":
		return float64(r.IsMostlyDigits), true
	case "word_count":
		return float64(r.WordCount), true
	case "char_count":
		return float64(r.CharCount), true
	case "y_gap_from_prev":
		return r.YGapFromPrev, true
	case "x_diff_from_prev":
		return r.XDiffFromPrev, true
	case "font_diff_from_prev":
		return r.FontDiffFromPrev, true
	case "ends_with_colon":
		return float64(r.EndsWithColon), true
	case "starts_with_numbering":
		return float64(r.StartsWithNumbering), true
	}
	return 0, false
}

// Vector returns the record's values in FeatureNames order
func (r FeatureRecord) Vector() []float64 {
	v := make([]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		v[i], _ = r.Feature(name)
	}
	return v
}

// LabeledRecord is a FeatureRecord with an externally assigned label.
// IsTitle is only set while building training data.
type LabeledRecord struct {
	FeatureRecord
	Label   string `json:"label"`
	IsTitle bool   `json:"is_title"`
}

// IsHeading returns true if the label denotes a heading level
func (r LabeledRecord) IsHeading() bool {
	return IsHeadingLabel(r.Label)
}

// IsHeadingLabel returns true if label starts with the heading-level marker
func IsHeadingLabel(label string) bool {
	return strings.HasPrefix(label, HeadingLabelPrefix)
}
