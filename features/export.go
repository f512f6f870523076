package features

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tsawler/pdfoutline/model"
)

// ExportFormat defines the available export formats
type ExportFormat int

const (
	// ExportFormatJSONL exports as JSON Lines (one JSON object per line)
	ExportFormatJSONL ExportFormat = iota
	// ExportFormatJSON exports as a JSON array
	ExportFormatJSON
	// ExportFormatCSV exports as comma-separated values
	ExportFormatCSV
	// ExportFormatTSV exports as tab-separated values
	ExportFormatTSV
)

// String returns a human-readable representation of the export format
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatJSON:
		return "json"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatJSONL:
		return ".jsonl"
	case ExportFormatJSON:
		return ".json"
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatTSV:
		return ".tsv"
	default:
		return ".txt"
	}
}

// ExportConfig holds configuration options for export
type ExportConfig struct {
	// Format specifies the export format
	Format ExportFormat

	// Columns lists the feature columns to write, in order (nil = model.FeatureNames)
	Columns []string

	// IncludeText includes the line text
	IncludeText bool

	// IncludeLabel includes the label column (labelled records only)
	IncludeLabel bool

	// CSVDelimiter specifies the delimiter for CSV export (default: comma)
	CSVDelimiter rune

	// IncludeHeader includes header row in CSV/TSV exports
	IncludeHeader bool

	// PrettyPrint enables pretty printing for JSON formats
	PrettyPrint bool

	// TextColumnName specifies the column name for text content
	TextColumnName string

	// LabelColumnName specifies the column name for the label
	LabelColumnName string
}

// DefaultExportConfig returns sensible defaults for export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:          ExportFormatJSONL,
		Columns:         nil, // all features
		IncludeText:     true,
		IncludeLabel:    true,
		CSVDelimiter:    ',',
		IncludeHeader:   true,
		PrettyPrint:     false,
		TextColumnName:  "text",
		LabelColumnName: "label",
	}
}

// CSVExportConfig returns config for CSV export
func CSVExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatCSV
	return config
}

// TSVExportConfig returns config for TSV export
func TSVExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatTSV
	config.CSVDelimiter = '\t'
	return config
}

// ClassifierExportConfig returns config for handing rows to a numeric
// classifier: feature columns only, no text or label
func ClassifierExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatCSV
	config.IncludeText = false
	config.IncludeLabel = false
	return config
}

// Exporter writes feature records to various formats
type Exporter struct {
	config ExportConfig
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{
		config: DefaultExportConfig(),
	}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	return &Exporter{
		config: config,
	}
}

// ExportedRecord represents a record prepared for JSON export
type ExportedRecord struct {
	Text     string             `json:"text,omitempty"`
	Page     int                `json:"page"`
	Label    string             `json:"label,omitempty"`
	Features map[string]float64 `json:"features"`
}

// Export writes labelled records to w
func (e *Exporter) Export(records []model.LabeledRecord, w io.Writer) error {
	if err := e.validateColumns(); err != nil {
		return err
	}
	switch e.config.Format {
	case ExportFormatJSONL:
		return e.exportJSONL(records, w)
	case ExportFormatJSON:
		return e.exportJSON(records, w)
	case ExportFormatCSV, ExportFormatTSV:
		return e.exportCSV(records, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportFeatures writes unlabelled records to w
func (e *Exporter) ExportFeatures(records []model.FeatureRecord, w io.Writer) error {
	labelled := make([]model.LabeledRecord, len(records))
	for i, r := range records {
		labelled[i] = model.LabeledRecord{FeatureRecord: r}
	}
	return e.Export(labelled, w)
}

// ExportToFile writes labelled records to a file
func (e *Exporter) ExportToFile(records []model.LabeledRecord, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(records, f)
}

// ExportToString writes labelled records to a string
func (e *Exporter) ExportToString(records []model.LabeledRecord) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(records, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// columns returns the feature columns to export
func (e *Exporter) columns() []string {
	if e.config.Columns == nil {
		return model.FeatureNames
	}
	return e.config.Columns
}

func (e *Exporter) validateColumns() error {
	var probe model.FeatureRecord
	for _, col := range e.columns() {
		if _, ok := probe.Feature(col); !ok {
			return fmt.Errorf("unknown feature column %q", col)
		}
	}
	return nil
}

// prepareRecord converts a record for JSON export
func (e *Exporter) prepareRecord(r model.LabeledRecord) ExportedRecord {
	exported := ExportedRecord{
		Page:     r.Page,
		Features: make(map[string]float64, len(e.columns())),
	}
	if e.config.IncludeText {
		exported.Text = r.Text
	}
	if e.config.IncludeLabel {
		exported.Label = r.Label
	}
	for _, col := range e.columns() {
		exported.Features[col] = columnValue(r, col)
	}
	return exported
}

// columnValue reads a feature column; is_title reflects the record's flag
func columnValue(r model.LabeledRecord, col string) float64 {
	if col == "is_title" {
		if r.IsTitle {
			return 1
		}
		return 0
	}
	v, _ := r.Feature(col)
	return v
}

// exportJSONL exports records as JSON Lines (one JSON object per line)
func (e *Exporter) exportJSONL(records []model.LabeledRecord, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}

	for i, r := range records {
		if err := encoder.Encode(e.prepareRecord(r)); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}

	return nil
}

// exportJSON exports records as a JSON array
func (e *Exporter) exportJSON(records []model.LabeledRecord, w io.Writer) error {
	exported := make([]ExportedRecord, len(records))
	for i, r := range records {
		exported[i] = e.prepareRecord(r)
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(exported)
}

// exportCSV exports records as CSV or TSV
func (e *Exporter) exportCSV(records []model.LabeledRecord, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if e.config.CSVDelimiter != 0 {
		csvWriter.Comma = e.config.CSVDelimiter
	}

	header := e.csvHeader()
	if e.config.IncludeHeader {
		if err := csvWriter.Write(header); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for i, r := range records {
		if err := csvWriter.Write(e.recordToCSVRow(r)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// csvHeader returns the header row: text, feature columns, label
func (e *Exporter) csvHeader() []string {
	header := make([]string, 0, len(e.columns())+2)
	if e.config.IncludeText {
		header = append(header, e.config.TextColumnName)
	}
	header = append(header, e.columns()...)
	if e.config.IncludeLabel {
		header = append(header, e.config.LabelColumnName)
	}
	return header
}

// recordToCSVRow converts a record to a row matching csvHeader
func (e *Exporter) recordToCSVRow(r model.LabeledRecord) []string {
	row := make([]string, 0, len(e.columns())+2)
	if e.config.IncludeText {
		row = append(row, r.Text)
	}
	for _, col := range e.columns() {
		row = append(row, strconv.FormatFloat(columnValue(r, col), 'f', -1, 64))
	}
	if e.config.IncludeLabel {
		row = append(row, r.Label)
	}
	return row
}

// StreamExporter writes one page batch at a time as JSON Lines, so a
// document never has to be held in memory
type StreamExporter struct {
	exporter *Exporter
	encoder  *json.Encoder
	count    int
}

// NewStreamExporter creates a stream exporter writing to w
func NewStreamExporter(w io.Writer) *StreamExporter {
	return NewStreamExporterWithConfig(w, DefaultExportConfig())
}

// NewStreamExporterWithConfig creates a stream exporter with custom config.
// The format is always JSON Lines.
func NewStreamExporterWithConfig(w io.Writer, config ExportConfig) *StreamExporter {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return &StreamExporter{
		exporter: NewExporterWithConfig(config),
		encoder:  encoder,
	}
}

// WriteBatch writes the records of one page
func (se *StreamExporter) WriteBatch(records []model.FeatureRecord) error {
	if err := se.exporter.validateColumns(); err != nil {
		return err
	}
	for _, r := range records {
		exported := se.exporter.prepareRecord(model.LabeledRecord{FeatureRecord: r})
		if err := se.encoder.Encode(exported); err != nil {
			return fmt.Errorf("encoding record %d: %w", se.count, err)
		}
		se.count++
	}
	return nil
}

// Count returns the number of records written so far
func (se *StreamExporter) Count() int {
	return se.count
}
