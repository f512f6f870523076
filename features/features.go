package features

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
)

var (
	// ErrEmptyLine is returned for a line with no words or no text
	ErrEmptyLine = errors.New("line has no text")

	// ErrNonFinite is returned when a computed feature is NaN or infinite
	ErrNonFinite = errors.New("non-finite feature value")
)

// PageContext holds the page-level aggregates every line's features are
// computed against. Build it once per page with NewPageContext.
type PageContext struct {
	Number          int
	Width           float64
	Height          float64
	AverageFontSize float64

	page *model.Page
}

// NewPageContext computes the aggregates for a page
func NewPageContext(page *model.Page) PageContext {
	if page == nil {
		return PageContext{}
	}
	return PageContext{
		Number:          page.Number,
		Width:           page.Width,
		Height:          page.Height,
		AverageFontSize: page.AverageFontSize(),
		page:            page,
	}
}

// Compute builds the feature record for one line. Context deltas are left
// at zero; ApplyContext fills them once a page's lines are known.
//
// Any error means the line should be skipped.
func Compute(line *layout.Line, ctx PageContext) (model.FeatureRecord, error) {
	if line == nil || len(line.Words) == 0 || line.Text == "" {
		return model.FeatureRecord{}, ErrEmptyLine
	}

	block, lineIndex := line.LayoutRef()
	fontSize, bold := fontMetrics(ctx.page.LineSpans(block, lineIndex))

	txt := line.Text
	rec := model.FeatureRecord{
		Text:     txt,
		Page:     ctx.Number,
		FontSize: fontSize,
		IsBold:   boolToInt(bold),
		X:        line.X(),
		Y:        line.RefY,
		Y1:       line.Bottom,

		EndsWithColon:       boolToInt(EndsWithColon(txt)),
		StartsWithNumbering: boolToInt(MatchesNumbering(txt)),
		WordCount:           len(strings.Fields(txt)),
		CharCount:           utf8.RuneCountInString(txt),
		IsAllCaps:           boolToInt(IsAllCaps(txt)),
		IsMostlyDigits:      boolToInt(IsMostlyDigits(txt)),
	}

	if ctx.Width > 0 {
		rec.XNorm = rec.X / ctx.Width
	}
	if ctx.Height > 0 {
		rec.YNorm = rec.Y / ctx.Height
	}
	if ctx.AverageFontSize > 0 {
		rec.RelativeFontSize = fontSize / ctx.AverageFontSize
	}

	if err := checkFinite(rec); err != nil {
		return model.FeatureRecord{}, err
	}
	return rec, nil
}

// fontMetrics returns the mean span size and whether a strict majority of
// spans use a bold font. No spans gives (0, false).
func fontMetrics(spans []model.Span) (float64, bool) {
	if len(spans) == 0 {
		return 0, false
	}
	total := 0.0
	bold := 0
	for _, s := range spans {
		total += s.Size
		if s.IsBold() {
			bold++
		}
	}
	return total / float64(len(spans)), bold*2 > len(spans)
}

func checkFinite(rec model.FeatureRecord) error {
	for i, v := range rec.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w", model.FeatureNames[i], ErrNonFinite)
		}
	}
	if math.IsNaN(rec.Y1) || math.IsInf(rec.Y1, 0) {
		return fmt.Errorf("y1: %w", ErrNonFinite)
	}
	return nil
}

// ApplyContext fills the deltas of each record against the record before
// it. The first record's deltas are zero. Records must belong to one page
// and be in reading order.
func ApplyContext(records []model.FeatureRecord) {
	for i := range records {
		if i == 0 {
			records[i].YGapFromPrev = 0
			records[i].XDiffFromPrev = 0
			records[i].FontDiffFromPrev = 0
			continue
		}
		prev := records[i-1]
		records[i].YGapFromPrev = records[i].Y - prev.Y1
		records[i].XDiffFromPrev = records[i].X - prev.X
		records[i].FontDiffFromPrev = records[i].FontSize - prev.FontSize
	}
}

// ComputePage computes the records for a page's lines, in order, skipping
// lines that fail, and applies context deltas. It returns the records and
// the number of lines skipped.
func ComputePage(ctx PageContext, lines []layout.Line) ([]model.FeatureRecord, int) {
	records := make([]model.FeatureRecord, 0, len(lines))
	skipped := 0
	for i := range lines {
		rec, err := Compute(&lines[i], ctx)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	ApplyContext(records)
	return records, skipped
}
