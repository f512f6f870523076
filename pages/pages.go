package pages

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfoutline/model"
)

// PageLimit is the most pages read from one document. Pages past the
// limit are never loaded.
const PageLimit = 60

// ErrSourceClosed is returned by a source used after Close
var ErrSourceClosed = errors.New("page source is closed")

// Source supplies page snapshots of one open document. Pages are loaded
// one at a time by 0-based index; the caller releases each page before
// loading the next.
type Source interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// LoadPage returns a snapshot of the page at the given 0-based index
	LoadPage(index int) (*model.Page, error)

	// Close releases the document
	Close() error
}

// MemorySource is a Source over pages that are already in memory.
// LoadPage hands out a shallow copy, so releasing a loaded page leaves the
// source's own pages intact.
type MemorySource struct {
	pages  []*model.Page
	closed bool
}

// NewMemorySource creates a source over the given pages, in order
func NewMemorySource(pages ...*model.Page) *MemorySource {
	return &MemorySource{pages: pages}
}

// PageCount returns the number of pages
func (m *MemorySource) PageCount() int {
	return len(m.pages)
}

// LoadPage returns a copy of the page at index
func (m *MemorySource) LoadPage(index int) (*model.Page, error) {
	if m.closed {
		return nil, ErrSourceClosed
	}
	if index < 0 || index >= len(m.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(m.pages))
	}
	src := m.pages[index]
	if src == nil {
		return nil, fmt.Errorf("page %d is nil", index+1)
	}
	cp := *src
	return &cp, nil
}

// Close marks the source closed
func (m *MemorySource) Close() error {
	m.closed = true
	return nil
}
