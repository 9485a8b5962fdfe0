// Package pdfprovider implements the provider.PageTextProvider contract on
// top of the ledongthuc/pdf reader.
//
// The backend exposes positioned text runs per page; this package clusters
// runs sharing a baseline into lines, converts the PDF's bottom-up
// coordinates into the model's top-down page space, and carries per-run
// font sizes as glyph sizes. The backend exposes no decoded image streams,
// so ImageRegions always reports none; image handling is exercised through
// injected providers.
package pdfprovider

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/provider"
)

// baselineTol is the y-distance within which two text runs are considered
// to share a baseline.
const baselineTol = 2.0

// cellGapFactor scales the font size into the horizontal gap beyond which
// co-baseline runs become separate line fragments. Word gaps stay well
// under it; table cell gaps exceed it, so side-by-side cells keep their own
// left edges for column inference instead of collapsing into one line.
const cellGapFactor = 2.0

// defaultPageHeight is used when a page carries no usable MediaBox.
const defaultPageHeight = 792.0

// Provider reads positioned text from PDF bytes.
type Provider struct {
	reader *pdf.Reader
}

// New opens the document. Malformed bytes fail here, before any page
// processing.
func New(data []byte) (*Provider, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Provider{reader: r}, nil
}

// PageCount returns the number of pages in the document.
func (p *Provider) PageCount() int {
	return p.reader.NumPage()
}

// Lines returns the text lines of a page (0-based index), clustered from
// the backend's positioned runs. The backend is known to panic on some
// malformed content streams; that is converted into a per-page error so
// the caller can skip the page instead of aborting the document.
func (p *Provider) Lines(pageIndex int) (lines []provider.Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("page %d content: %v", pageIndex+1, r)
		}
	}()

	if pageIndex < 0 || pageIndex >= p.reader.NumPage() {
		return nil, fmt.Errorf("page index %d out of range", pageIndex)
	}

	page := p.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d is null", pageIndex+1)
	}

	height := pageHeight(page)
	runs := page.Content().Text
	return clusterLines(runs, height), nil
}

// ImageRegions reports no regions: the backend does not expose decoded
// image streams.
func (p *Provider) ImageRegions(pageIndex int) ([]provider.ImageRegion, error) {
	return nil, nil
}

// pageHeight reads the page's MediaBox height, falling back to US Letter.
func pageHeight(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		y0 := box.Index(1).Float64()
		y1 := box.Index(3).Float64()
		if y1 > y0 {
			return y1 - y0
		}
	}
	return defaultPageHeight
}

// clusterLines groups text runs sharing a baseline, splits each baseline
// at cell-scale horizontal gaps, and flips the resulting lines into
// top-down coordinates.
func clusterLines(runs []pdf.Text, pageHeight float64) []provider.Line {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	// Top of page first (PDF y grows upward), then left to right.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []provider.Line
	var current []pdf.Text
	flush := func() {
		for _, frag := range splitCellRuns(current) {
			lines = append(lines, buildLine(frag, pageHeight))
		}
		current = current[:0:0]
	}
	for _, run := range sorted {
		if len(current) > 0 && current[0].Y-run.Y > baselineTol {
			flush()
		}
		current = append(current, run)
	}
	flush()
	return lines
}

// splitCellRuns splits one baseline's runs into fragments wherever the
// horizontal gap between consecutive runs exceeds cellGapFactor times the
// font size. Runs must already be ordered left to right.
func splitCellRuns(runs []pdf.Text) [][]pdf.Text {
	var groups [][]pdf.Text
	var current []pdf.Text
	lastEnd := 0.0
	for _, run := range runs {
		size := run.FontSize
		if size <= 0 {
			size = 1
		}
		if len(current) > 0 && run.X-lastEnd > cellGapFactor*size {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, run)
		if end := run.X + run.W; end > lastEnd {
			lastEnd = end
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// buildLine joins one baseline fragment's runs into a provider line. A
// space is inserted where the horizontal gap between runs exceeds a quarter
// of the font size, since the backend reports runs without explicit word
// breaks. Runs with non-positive font sizes contribute geometry but no
// glyph size entry.
func buildLine(runs []pdf.Text, pageHeight float64) provider.Line {
	var sb strings.Builder
	var bbox model.Rect
	sizes := make([]float64, 0, len(runs))
	lastEnd := 0.0

	for i, run := range runs {
		if i > 0 && run.X-lastEnd > 0.25*run.FontSize {
			sb.WriteString(" ")
		}
		sb.WriteString(run.S)
		lastEnd = run.X + run.W

		size := run.FontSize
		if size <= 0 {
			size = 1
		}
		runRect := model.NewRect(
			run.X,
			pageHeight-(run.Y+size),
			run.X+run.W,
			pageHeight-run.Y,
		)
		bbox = bbox.Union(runRect)
		if run.FontSize > 0 {
			sizes = append(sizes, run.FontSize)
		}
	}

	return provider.Line{
		Text:       sb.String(),
		BBox:       bbox,
		GlyphSizes: sizes,
	}
}
