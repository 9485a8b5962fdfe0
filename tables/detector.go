package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/provider"
)

// Config holds detector configuration. The zero value of the tolerance
// fields means "derive dynamically from the median line height".
type Config struct {
	// MinColumns and MaxColumns bound the accepted column count.
	MinColumns int
	MaxColumns int

	// MinRows is the minimum number of row bands for a candidate region.
	MinRows int

	// MinAlignScore is the minimum fraction of fragments that must sit
	// within the column tolerance of their assigned center.
	MinAlignScore float64

	// RowTolerance fixes the row banding tolerance. When 0 it is derived
	// as max(1.5, 0.5 * medianLineHeight).
	RowTolerance float64

	// ColTolerance fixes the column clustering tolerance. When 0 it is
	// derived as max(2.0, 0.6 * 0.35 * medianLineHeight), approximating
	// a character width.
	ColTolerance float64

	// MaxRowGapFactor is the maximum vertical gap between consecutive row
	// bands of one region, as a multiple of the median line height.
	MaxRowGapFactor float64
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		MinColumns:      2,
		MaxColumns:      10,
		MinRows:         2,
		MinAlignScore:   0.75,
		RowTolerance:    0,
		ColTolerance:    0,
		MaxRowGapFactor: 3.0,
	}
}

// Table is a detected table prior to block construction.
type Table struct {
	// Rows holds the rectangularized cell text, every row the same width.
	Rows [][]string

	// BBox is the union of all participating line rectangles, used for
	// nearest-caption matching.
	BBox model.Rect

	// LineIndexes are the indexes (into the detector's input slice) of the
	// lines this table consumed, in ascending order.
	LineIndexes []int

	// AlignScore is the fraction of fragments within tolerance of their
	// column center.
	AlignScore float64
}

// Detector finds tables in a page's lines. It carries no state besides its
// configuration and is safe for concurrent use across documents.
type Detector struct {
	config Config
}

// NewDetector creates a detector with the default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with the given configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// rowBand is a cluster of lines sharing an approximately equal baseline.
type rowBand struct {
	refBottom float64 // bottom edge of the first member
	top       float64
	bottom    float64
	lines     []int // indexes into the input slice
}

// Detect finds tables among the given lines. The slice should already be in
// reading order; returned LineIndexes refer to positions in it.
// medianLineHeight drives the dynamic tolerances.
func (d *Detector) Detect(lines []provider.Line, medianLineHeight float64) []Table {
	if len(lines) < d.config.MinRows*d.config.MinColumns {
		return nil
	}
	if medianLineHeight <= 0 {
		medianLineHeight = 12
	}

	rowTol := d.config.RowTolerance
	if rowTol == 0 {
		rowTol = math.Max(1.5, 0.5*medianLineHeight)
	}
	colTol := d.config.ColTolerance
	if colTol == 0 {
		colTol = math.Max(2.0, 0.6*0.35*medianLineHeight)
	}

	bands := d.bandRows(lines, rowTol)
	if len(bands) < d.config.MinRows {
		return nil
	}

	var tables []Table
	maxGap := d.config.MaxRowGapFactor * medianLineHeight
	for _, region := range d.groupBands(bands, maxGap) {
		if t := d.buildTable(lines, region, colTol); t != nil {
			tables = append(tables, *t)
		}
	}
	return tables
}

// bandRows clusters lines into row bands by comparing each line's bottom
// edge against the first member of each existing band. Degenerate lines
// (invalid rectangles) and whitespace-only lines are excluded: they carry
// no cell content and would only dent the alignment score.
func (d *Detector) bandRows(lines []provider.Line, rowTol float64) []rowBand {
	order := make([]int, 0, len(lines))
	for i, l := range lines {
		if !l.BBox.IsValid() || strings.TrimSpace(l.Text) == "" {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lines[order[a]].BBox.Top() < lines[order[b]].BBox.Top()
	})

	var bands []*rowBand
	for _, idx := range order {
		bbox := lines[idx].BBox
		var joined *rowBand
		for _, b := range bands {
			if math.Abs(bbox.Bottom()-b.refBottom) <= rowTol {
				joined = b
				break
			}
		}
		if joined == nil {
			bands = append(bands, &rowBand{
				refBottom: bbox.Bottom(),
				top:       bbox.Top(),
				bottom:    bbox.Bottom(),
				lines:     []int{idx},
			})
			continue
		}
		joined.lines = append(joined.lines, idx)
		joined.top = math.Min(joined.top, bbox.Top())
		joined.bottom = math.Max(joined.bottom, bbox.Bottom())
	}

	result := make([]rowBand, len(bands))
	for i, b := range bands {
		result[i] = *b
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].top < result[b].top
	})
	return result
}

// groupBands walks row bands in order and groups vertically close bands
// into candidate regions. A gap larger than maxGap starts a new region so
// two unrelated tables separated by a paragraph are not merged.
func (d *Detector) groupBands(bands []rowBand, maxGap float64) [][]rowBand {
	var regions [][]rowBand
	current := []rowBand{bands[0]}
	for i := 1; i < len(bands); i++ {
		gap := bands[i].top - current[len(current)-1].bottom
		if gap > maxGap {
			regions = append(regions, current)
			current = []rowBand{bands[i]}
			continue
		}
		current = append(current, bands[i])
	}
	regions = append(regions, current)
	return regions
}

// buildTable infers columns for a candidate region, assigns fragments to
// cells and validates the result. It returns nil when the region is not a
// table.
func (d *Detector) buildTable(lines []provider.Line, region []rowBand, colTol float64) *Table {
	region = trimLoneBands(region, d.config.MinRows)
	if len(region) < d.config.MinRows {
		return nil
	}

	centers := d.inferColumns(lines, region, colTol)
	if len(centers) < d.config.MinColumns || len(centers) > d.config.MaxColumns {
		return nil
	}

	rows := make([][]string, len(region))
	bbox := model.Rect{}
	var indexes []int
	fragments := 0
	aligned := 0

	for r, band := range region {
		cells := make([]string, len(centers))

		// Left-to-right within the band so cell text concatenates in
		// reading order.
		members := make([]int, len(band.lines))
		copy(members, band.lines)
		sort.SliceStable(members, func(a, b int) bool {
			return lines[members[a]].BBox.Left() < lines[members[b]].BBox.Left()
		})

		for _, idx := range members {
			line := lines[idx]
			col, dist := nearestCenter(centers, line.BBox.Left())
			fragments++
			if dist <= colTol {
				aligned++
			}
			if cells[col] != "" {
				cells[col] += " "
			}
			cells[col] += strings.TrimSpace(line.Text)
			bbox = bbox.Union(line.BBox)
			indexes = append(indexes, idx)
		}
		rows[r] = cells
	}

	if fragments == 0 {
		return nil
	}
	alignScore := float64(aligned) / float64(fragments)
	if alignScore < d.config.MinAlignScore {
		return nil
	}

	modeCols, consistent := d.modeColumnCount(rows)
	if !consistent || modeCols < d.config.MinColumns || modeCols > d.config.MaxColumns {
		return nil
	}

	for r := range rows {
		rows[r] = rectangularize(rows[r], modeCols)
	}

	sort.Ints(indexes)
	return &Table{
		Rows:        rows,
		BBox:        bbox,
		LineIndexes: indexes,
		AlignScore:  alignScore,
	}
}

// trimLoneBands drops single-line bands from the edges of a region, down to
// minRows at most. A caption or title line sitting right above or below a
// grid lands in the grid's region; trimming it here leaves it unconsumed so
// it classifies normally, instead of breaking the region's column
// consistency. Interior raggedness is untouched and still rejects the
// region.
func trimLoneBands(region []rowBand, minRows int) []rowBand {
	lo, hi := 0, len(region)
	for hi-lo > minRows && len(region[lo].lines) == 1 {
		lo++
	}
	for hi-lo > minRows && len(region[hi-1].lines) == 1 {
		hi--
	}
	return region[lo:hi]
}

// inferColumns greedily clusters the left edges of all region lines into
// column centers. Scanning sorted x-values, a new center starts whenever
// the next value exceeds the running center by more than colTol; values
// joining a center update it to the running average.
func (d *Detector) inferColumns(lines []provider.Line, region []rowBand, colTol float64) []float64 {
	var xs []float64
	for _, band := range region {
		for _, idx := range band.lines {
			xs = append(xs, lines[idx].BBox.Left())
		}
	}
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)

	centers := []float64{xs[0]}
	counts := []int{1}
	for _, x := range xs[1:] {
		last := len(centers) - 1
		if x-centers[last] > colTol {
			centers = append(centers, x)
			counts = append(counts, 1)
			continue
		}
		counts[last]++
		centers[last] += (x - centers[last]) / float64(counts[last])
	}
	return centers
}

// nearestCenter returns the index of the closest column center to x and the
// distance to it, using binary search over the sorted centers. Equidistant
// ties resolve to the lower index.
func nearestCenter(centers []float64, x float64) (int, float64) {
	i := sort.SearchFloat64s(centers, x)
	if i == 0 {
		return 0, math.Abs(centers[0] - x)
	}
	if i == len(centers) {
		return i - 1, math.Abs(x - centers[i-1])
	}
	left := x - centers[i-1]
	right := centers[i] - x
	if left <= right {
		return i - 1, left
	}
	return i, right
}

// modeColumnCount returns the most frequent non-empty-cell count across
// rows and whether every row matches it (strict consistency). Frequency
// ties resolve toward the larger count.
func (d *Detector) modeColumnCount(rows [][]string) (int, bool) {
	counts := make(map[int]int)
	for _, row := range rows {
		n := 0
		for _, cell := range row {
			if cell != "" {
				n++
			}
		}
		counts[n]++
	}

	mode, best := 0, 0
	for n, freq := range counts {
		if freq > best || (freq == best && n > mode) {
			mode, best = n, freq
		}
	}

	consistent := len(counts) == 1
	return mode, consistent
}

// rectangularize pads or truncates a row to exactly cols cells.
func rectangularize(row []string, cols int) []string {
	if len(row) == cols {
		return row
	}
	if len(row) > cols {
		return row[:cols]
	}
	padded := make([]string, cols)
	copy(padded, row)
	return padded
}
