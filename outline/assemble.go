package outline

import (
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

// Assemble builds the document outline from labelled records in reading
// order. Every record whose label is a heading level becomes an entry, in
// input order, with its page converted to 0-based. An empty input gives an
// empty title and an empty outline.
func Assemble(records []model.LabeledRecord) *model.DocumentOutline {
	doc := model.NewDocumentOutline()
	doc.Title = SelectTitle(records)

	for _, r := range records {
		if !r.IsHeading() {
			continue
		}
		doc.AddEntry(model.OutlineEntry{
			Level: r.Label,
			Text:  r.Text,
			Page:  zeroBasedPage(r.Page),
		})
	}

	return doc
}

// SelectTitle picks the document title: the largest-font line on page 1,
// topmost on ties. Without page-1 lines it falls back to the largest-font
// line anywhere, preferring earlier pages and then higher lines. Returns ""
// when there are no records.
func SelectTitle(records []model.LabeledRecord) string {
	if len(records) == 0 {
		return ""
	}

	var firstPage []model.LabeledRecord
	for _, r := range records {
		if r.Page == 1 {
			firstPage = append(firstPage, r)
		}
	}

	if len(firstPage) > 0 {
		sort.SliceStable(firstPage, func(i, j int) bool {
			a, b := firstPage[i], firstPage[j]
			if a.FontSize != b.FontSize {
				return a.FontSize > b.FontSize
			}
			return a.Y < b.Y
		})
		return firstPage[0].Text
	}

	candidates := make([]model.LabeledRecord, len(records))
	copy(candidates, records)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.FontSize != b.FontSize {
			return a.FontSize > b.FontSize
		}
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		return a.Y < b.Y
	})
	return candidates[0].Text
}

func zeroBasedPage(page int) int {
	if page-1 < 0 {
		return 0
	}
	return page - 1
}
