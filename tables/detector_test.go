package tables

import (
	"testing"

	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/provider"
)

// cell builds a line positioned like a table cell.
func cell(text string, x, y float64) provider.Line {
	return provider.Line{
		Text: text,
		BBox: model.NewRect(x, y, x+40, y+12),
	}
}

func TestDetect_TwoByTwoGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColTolerance = 5
	d := NewDetectorWithConfig(cfg)

	lines := []provider.Line{
		cell("Name", 50, 100),
		cell("Age", 200, 100),
		cell("Ann", 50, 120),
		cell("31", 200, 120),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}

	tbl := tables[0]
	if len(tbl.Rows) != 2 {
		t.Fatalf("table has %d rows, want 2", len(tbl.Rows))
	}
	if len(tbl.Rows[0]) != 2 || len(tbl.Rows[1]) != 2 {
		t.Fatalf("table is not 2 columns wide: %v", tbl.Rows)
	}
	if tbl.Rows[0][0] != "Name" || tbl.Rows[0][1] != "Age" {
		t.Errorf("header row = %v", tbl.Rows[0])
	}
	if tbl.Rows[1][0] != "Ann" || tbl.Rows[1][1] != "31" {
		t.Errorf("data row = %v", tbl.Rows[1])
	}
	if len(tbl.LineIndexes) != 4 {
		t.Errorf("consumed %d lines, want 4", len(tbl.LineIndexes))
	}
}

func TestDetect_ThreeColumnGrid(t *testing.T) {
	d := NewDetector()

	var lines []provider.Line
	for row := 0; row < 3; row++ {
		y := 100 + float64(row)*20
		lines = append(lines,
			cell("a", 50, y),
			cell("b", 150, y),
			cell("c", 250, y),
		)
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	if got := tables[0]; len(got.Rows) != 3 || len(got.Rows[0]) != 3 {
		t.Errorf("got %dx%d table, want 3x3", len(got.Rows), len(got.Rows[0]))
	}
}

func TestDetect_SingleColumnRejected(t *testing.T) {
	d := NewDetector()

	// A left-aligned paragraph: one shared left edge, no table.
	lines := []provider.Line{
		cell("first line of prose", 50, 100),
		cell("second line of prose", 50, 115),
		cell("third line of prose", 50, 130),
		cell("fourth line of prose", 50, 145),
	}

	if tables := d.Detect(lines, 12); tables != nil {
		t.Errorf("single-column region detected as table: %v", tables)
	}
}

func TestDetect_InconsistentRowsRejected(t *testing.T) {
	d := NewDetector()

	// Two columns in row 1, three in rows 2-3: strict consistency fails.
	lines := []provider.Line{
		cell("a", 50, 100), cell("b", 150, 100),
		cell("c", 50, 120), cell("d", 150, 120), cell("e", 250, 120),
		cell("f", 50, 140), cell("g", 150, 140), cell("h", 250, 140),
	}

	if tables := d.Detect(lines, 12); tables != nil {
		t.Errorf("inconsistent region detected as table: %v", tables)
	}
}

func TestDetect_TooManyColumnsRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxColumns = 3
	d := NewDetectorWithConfig(cfg)

	var lines []provider.Line
	for row := 0; row < 2; row++ {
		y := 100 + float64(row)*20
		for col := 0; col < 4; col++ {
			lines = append(lines, cell("x", 50+float64(col)*100, y))
		}
	}

	if tables := d.Detect(lines, 12); tables != nil {
		t.Errorf("4-column region accepted with MaxColumns=3")
	}
}

func TestDetect_ParagraphGapSplitsRegions(t *testing.T) {
	d := NewDetector()

	// Two 2x2 grids separated by far more than 3x the median line height.
	var lines []provider.Line
	for row := 0; row < 2; row++ {
		y := 100 + float64(row)*20
		lines = append(lines, cell("a", 50, y), cell("b", 200, y))
	}
	for row := 0; row < 2; row++ {
		y := 500 + float64(row)*20
		lines = append(lines, cell("c", 50, y), cell("d", 200, y))
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 2 {
		t.Fatalf("Detect found %d tables, want 2 separate tables", len(tables))
	}
}

func TestDetect_SideBySideCellsShareBand(t *testing.T) {
	d := NewDetector()

	// Slight baseline jitter within the row tolerance still bands together.
	lines := []provider.Line{
		cell("a", 50, 100), cell("b", 200, 101),
		cell("c", 50, 130), cell("d", 200, 129),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Errorf("jittered rows banded into %d rows, want 2", len(tables[0].Rows))
	}
}

func TestDetect_DegenerateInputs(t *testing.T) {
	d := NewDetector()

	if got := d.Detect(nil, 12); got != nil {
		t.Errorf("Detect(nil) = %v, want nil", got)
	}

	// Zero-area rectangles are rejected as input.
	degenerate := []provider.Line{
		{Text: "a", BBox: model.Rect{X0: 10, Y0: 10, X1: 10, Y1: 10}},
		{Text: "b", BBox: model.Rect{X0: 20, Y0: 10, X1: 20, Y1: 10}},
		{Text: "c", BBox: model.Rect{X0: 10, Y0: 30, X1: 10, Y1: 30}},
		{Text: "d", BBox: model.Rect{X0: 20, Y0: 30, X1: 20, Y1: 30}},
	}
	if got := d.Detect(degenerate, 12); got != nil {
		t.Errorf("Detect(degenerate) = %v, want nil", got)
	}

	// A single line can never be a table.
	single := []provider.Line{cell("alone", 50, 100), cell("x", 200, 100)}
	if got := d.Detect(single, 12); got != nil {
		t.Errorf("Detect(single row) = %v, want nil", got)
	}
}

func TestDetect_CellFragmentsConcatenate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColTolerance = 8
	d := NewDetectorWithConfig(cfg)

	// Two fragments near the same column center merge into one cell.
	lines := []provider.Line{
		cell("total", 50, 100), cell("amount", 54, 100), cell("due", 200, 100),
		cell("x", 50, 120), cell("y", 200, 120),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	if got := tables[0].Rows[0][0]; got != "total amount" {
		t.Errorf("merged cell = %q, want \"total amount\"", got)
	}
}

func TestDetect_BlankLineInsideGridIgnored(t *testing.T) {
	d := NewDetector()

	// A whitespace-only fragment with a valid rectangle sits between the
	// columns of the header row. It carries no cell content and must not
	// join a band or dent the alignment score.
	lines := []provider.Line{
		cell("Name", 50, 100), cell("Age", 200, 100),
		cell("   ", 120, 100),
		cell("Ann", 50, 120), cell("31", 200, 120),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	tbl := tables[0]
	if tbl.AlignScore != 1.0 {
		t.Errorf("AlignScore = %f, want 1.0 with blank fragment excluded", tbl.AlignScore)
	}
	for _, idx := range tbl.LineIndexes {
		if idx == 2 {
			t.Error("blank fragment was consumed as a table cell")
		}
	}
	if tbl.Rows[0][0] != "Name" || tbl.Rows[0][1] != "Age" {
		t.Errorf("header row = %v", tbl.Rows[0])
	}
}

func TestDetect_AdjacentCaptionLineNotConsumed(t *testing.T) {
	d := NewDetector()

	// A caption line directly below the grid falls into the grid's band
	// region but must not break detection or be consumed as a cell.
	lines := []provider.Line{
		cell("Name", 50, 100), cell("Age", 200, 100),
		cell("Ann", 50, 120), cell("31", 200, 120),
		cell("Table 1: People", 50, 140),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	tbl := tables[0]
	if len(tbl.Rows) != 2 {
		t.Errorf("table has %d rows, want 2", len(tbl.Rows))
	}
	for _, idx := range tbl.LineIndexes {
		if idx == 4 {
			t.Error("caption line was consumed as a table cell")
		}
	}
}

func TestDetect_TitleLineAboveGridNotConsumed(t *testing.T) {
	d := NewDetector()

	lines := []provider.Line{
		cell("Quarterly results", 50, 80),
		cell("Q1", 50, 100), cell("Q2", 200, 100),
		cell("10", 50, 120), cell("12", 200, 120),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	if len(tables[0].LineIndexes) != 4 {
		t.Errorf("consumed %d lines, want 4 (title excluded)", len(tables[0].LineIndexes))
	}
}

func TestNearestCenter(t *testing.T) {
	centers := []float64{50, 200, 350}
	tests := []struct {
		x        float64
		wantIdx  int
		wantDist float64
	}{
		{50, 0, 0},
		{40, 0, 10},
		{120, 0, 70},   // closer to 50
		{130, 1, 70},   // closer to 200
		{125, 0, 75},   // equidistant resolves to lower index
		{400, 2, 50},
	}
	for _, tt := range tests {
		idx, dist := nearestCenter(centers, tt.x)
		if idx != tt.wantIdx || dist != tt.wantDist {
			t.Errorf("nearestCenter(%v) = (%d, %f), want (%d, %f)",
				tt.x, idx, dist, tt.wantIdx, tt.wantDist)
		}
	}
}

func TestDetect_AlignScoreReported(t *testing.T) {
	d := NewDetector()

	lines := []provider.Line{
		cell("a", 50, 100), cell("b", 200, 100),
		cell("c", 50, 120), cell("d", 200, 120),
	}

	tables := d.Detect(lines, 12)
	if len(tables) != 1 {
		t.Fatalf("Detect found %d tables, want 1", len(tables))
	}
	if tables[0].AlignScore != 1.0 {
		t.Errorf("AlignScore = %f, want 1.0 for perfectly aligned grid", tables[0].AlignScore)
	}
}

func TestDetect_MinAlignScoreRejection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinAlignScore = 1.01 // impossible bar: every region rejected
	d := NewDetectorWithConfig(cfg)

	lines := []provider.Line{
		cell("a", 50, 100), cell("b", 200, 100),
		cell("c", 50, 120), cell("d", 200, 120),
	}

	if tables := d.Detect(lines, 12); tables != nil {
		t.Errorf("region accepted despite impossible align bar: %+v", tables)
	}
}
