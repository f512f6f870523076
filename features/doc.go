// Package features turns detected text lines into numeric feature records
// for a heading classifier.
//
// # Computing Records
//
// Page aggregates are computed once with [NewPageContext]; each line is then
// converted with [Compute], which returns an error for a line that should
// be skipped. [ApplyContext] fills the deltas against the previous line:
//
//	ctx := features.NewPageContext(page)
//	records, skipped := features.ComputePage(ctx, lines.Lines)
//
// Font size and boldness come from the spans of the layout line that the
// leftmost word belongs to. Position is taken from the line's words: x from
// the leftmost word, y from the first word placed in the line, and y1 from
// the bottom of the rightmost word.
//
// # Pattern Flags
//
// [MatchesNumbering], [EndsWithColon], [IsAllCaps] and [IsMostlyDigits]
// back the pattern columns. Note that IsAllCaps is true for text with no
// letters at all, so lines like "2023" or "---" carry is_all_caps = 1 and
// can look heading-like to a classifier.
//
// # Export
//
// The [Exporter] writes records as JSON Lines, JSON, CSV or TSV in the
// fixed [model.FeatureNames] column order, for handing pages to an external
// classifier process:
//
//	exporter := features.NewExporterWithConfig(features.ClassifierExportConfig())
//	err := exporter.ExportFeatures(records, os.Stdout)
package features
