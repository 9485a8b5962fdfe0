// Package tables detects tabular structures from positioned text lines
// using geometry alone.
//
// The [Detector] finds maximal runs of consecutive lines that represent
// tabular data without relying on pipe or tab characters. Detection works
// in stages: lines are clustered into row bands by baseline proximity,
// bands are grouped into candidate regions by vertical gap, column centers
// are inferred from left-edge x-coordinates, and each candidate is
// validated for alignment quality and per-row consistency before a table
// is emitted. Candidates failing validation are rejected wholesale and
// their lines fall back to ordinary paragraph/list classification.
//
// All tolerances derive from the observed median line height unless fixed
// values are configured, which keeps detection independent of the
// resolution the source document was rendered at.
package tables
