package model

import "strconv"

// OutlineEntry is one heading in a document outline.
// Page is 0-indexed.
type OutlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Depth returns the numeric part of a heading level ("H2" -> 2), or 0 if
// the level carries no number.
func (e OutlineEntry) Depth() int {
	if !IsHeadingLabel(e.Level) {
		return 0
	}
	n, err := strconv.Atoi(e.Level[len(HeadingLabelPrefix):])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DocumentOutline is the final artifact: a title plus headings in reading order
type DocumentOutline struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// NewDocumentOutline creates an empty outline. Outline is non-nil so it
// serializes as [] rather than null.
func NewDocumentOutline() *DocumentOutline {
	return &DocumentOutline{
		Outline: make([]OutlineEntry, 0),
	}
}

// AddEntry appends a heading to the outline
func (d *DocumentOutline) AddEntry(e OutlineEntry) {
	d.Outline = append(d.Outline, e)
}

// EntryCount returns the number of headings
func (d *DocumentOutline) EntryCount() int {
	if d == nil {
		return 0
	}
	return len(d.Outline)
}
