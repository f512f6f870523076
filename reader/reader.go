package reader

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pages"
)

// ErrNotPDF is returned when the input does not start with a PDF header
var ErrNotPDF = errors.New("not a PDF file")

// maxParentDepth bounds the walk up the page tree for inherited attributes
const maxParentDepth = 32

// versionPattern extracts major.minor from the header
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)`)

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Reader is a page source over a PDF file. Pages are decoded on demand,
// one at a time.
type Reader struct {
	file    *os.File
	doc     *pdf.Reader
	version PDFVersion
	config  Config
	closed  bool
}

// Ensure Reader implements pages.Source
var _ pages.Source = (*Reader)(nil)

// Open opens a PDF file with default configuration
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a PDF file with custom configuration
func OpenWithConfig(filename string, config Config) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	r, err := NewReaderWithConfig(file, info.Size(), config)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReader creates a reader over PDF data with default configuration.
// The caller keeps ownership of ra.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	return NewReaderWithConfig(ra, size, DefaultConfig())
}

// NewReaderWithConfig creates a reader over PDF data with custom configuration
func NewReaderWithConfig(ra io.ReaderAt, size int64, config Config) (r *Reader, err error) {
	version, err := parseHeader(ra)
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("failed to parse PDF: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return &Reader{
		doc:     doc,
		version: version,
		config:  config,
	}, nil
}

// parseHeader parses the PDF header (%PDF-x.y)
func parseHeader(ra io.ReaderAt) (PDFVersion, error) {
	header := make([]byte, 16)
	n, err := ra.ReadAt(header, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return PDFVersion{}, fmt.Errorf("failed to read header: %w", err)
	}

	headerStr := string(header[:n])
	if !strings.HasPrefix(headerStr, "%PDF-") {
		return PDFVersion{}, ErrNotPDF
	}

	matches := versionPattern.FindStringSubmatch(headerStr[5:])
	if len(matches) < 3 {
		return PDFVersion{}, fmt.Errorf("invalid version format: %q: %w", headerStr[5:], ErrNotPDF)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	return PDFVersion{Major: major, Minor: minor}, nil
}

// Version returns the PDF version from the header
func (r *Reader) Version() PDFVersion {
	return r.version
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() (count int) {
	if r.closed {
		return 0
	}
	defer func() {
		if rec := recover(); rec != nil {
			count = 0
		}
	}()
	return r.doc.NumPage()
}

// LoadPage decodes the page at the given 0-based index. A decoding panic
// inside the PDF library is returned as an error.
func (r *Reader) LoadPage(index int) (page *model.Page, err error) {
	if r.closed {
		return nil, pages.ErrSourceClosed
	}

	defer func() {
		if rec := recover(); rec != nil {
			page, err = nil, fmt.Errorf("failed to decode page %d: %v", index+1, rec)
		}
	}()

	if index < 0 || index >= r.doc.NumPage() {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, r.doc.NumPage())
	}

	p := r.doc.Page(index + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d has no page object", index+1)
	}

	mediaBox, ok := inheritedBox(p.V, "MediaBox")
	if !ok {
		// Zero dimensions make the page skippable
		return model.NewPage(index+1, 0, 0), nil
	}

	content := p.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			Text: t.S,
			Font: t.Font,
			Size: t.FontSize,
			X:    t.X,
			Y:    t.Y,
			W:    t.W,
		})
	}

	return BuildPageWithConfig(index+1, mediaBox, glyphs, r.config), nil
}

// inheritedBox resolves a rectangle attribute that may be inherited from
// an ancestor page-tree node
func inheritedBox(v pdf.Value, key string) (model.BBox, bool) {
	for depth := 0; depth < maxParentDepth && !v.IsNull(); depth++ {
		box := v.Key(key)
		if box.Len() == 4 {
			x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
			x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
			return model.NewBBox(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1)), true
		}
		v = v.Key("Parent")
	}
	return model.BBox{}, false
}

// Close closes the underlying file, if the reader opened it
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
