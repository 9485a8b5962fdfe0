package model

import "strings"

// Table is a rectangular table block. Every row has the same number of
// columns; rows are padded or truncated during detection before a Table is
// constructed. Caption is empty when no caption line was matched to the
// table.
type Table struct {
	BlockID    string
	PageNumber int
	Caption    string
	Rows       [][]string
}

func (t *Table) Kind() BlockKind { return KindTable }
func (t *Table) Page() int       { return t.PageNumber }
func (t *Table) ID() string      { return t.BlockID }

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns. Tables are rectangular, so the
// first row is representative.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Cell returns the cell text at the given row and column (0-indexed), or ""
// when the indices are out of bounds.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ToMarkdown renders the table as a GitHub-style pipe table. The first row
// is treated as the header row.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for _, cell := range cells {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Rows[0])
	for range t.Rows[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToTSV renders the table as tab-separated values, one row per line.
func (t *Table) ToTSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}
