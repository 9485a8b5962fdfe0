// Package htmlprovider implements the provider.PageTextProvider contract
// over HTML input.
//
// HTML carries no page geometry, so the provider synthesizes it: block
// elements stack vertically down a single page, heading tags receive
// proportionally larger synthetic font sizes, list items are prefixed with
// their markers, and table rows place their cells at fixed column offsets.
// The geometric pipeline then reconstructs the same structure it would
// from a rendered page. Images are not fetched (no network surface), so
// ImageRegions always reports none.
package htmlprovider

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/provider"
)

// Synthetic layout constants, in the same point space the PDF provider
// uses. Body size 12 gives h1/h2/h3 size ratios of 2.0, 1.5 and 1.25.
const (
	bodySize    = 12.0
	leftMargin  = 72.0
	lineSpacing = 1.5
	colWidth    = 150.0
	charWidth   = 0.5 // fraction of font size per character, for widths
)

// Provider serves synthesized lines from parsed HTML. The whole document
// is presented as a single page.
type Provider struct {
	lines []provider.Line
}

// New parses HTML bytes into a provider.
func New(data []byte) (*Provider, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &walker{y: leftMargin}
	w.walk(doc)
	return &Provider{lines: w.lines}, nil
}

// PageCount returns 1: HTML input has no page boundaries.
func (p *Provider) PageCount() int {
	return 1
}

// Lines returns the synthesized lines for the single page.
func (p *Provider) Lines(pageIndex int) ([]provider.Line, error) {
	if pageIndex != 0 {
		return nil, fmt.Errorf("page index %d out of range", pageIndex)
	}
	return p.lines, nil
}

// ImageRegions reports no regions; images are not fetched.
func (p *Provider) ImageRegions(pageIndex int) ([]provider.ImageRegion, error) {
	return nil, nil
}

// headingSizes maps heading tags to synthetic font sizes.
var headingSizes = map[string]float64{
	"h1": 24,
	"h2": 18,
	"h3": 15,
	"h4": 15,
	"h5": 15,
	"h6": 15,
}

// walker accumulates lines while descending the DOM, tracking a vertical
// cursor.
type walker struct {
	lines []provider.Line
	y     float64
}

func (w *walker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head", "noscript":
			return
		case "p", "blockquote", "pre", "figcaption":
			w.emit(textContent(n), bodySize, leftMargin)
			return
		case "ul":
			w.walkList(n, false)
			return
		case "ol":
			w.walkList(n, true)
			return
		case "table":
			w.walkTable(n)
			return
		default:
			if size, ok := headingSizes[n.Data]; ok {
				w.emit(textContent(n), size, leftMargin)
				return
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// walkList emits one line per list item, prefixed with its marker so the
// classifier recognizes the list type.
func (w *walker) walkList(n *html.Node, ordered bool) {
	number := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		text := textContent(c)
		if text == "" {
			continue
		}
		number++
		if ordered {
			w.emit(fmt.Sprintf("%d. %s", number, text), bodySize, leftMargin)
		} else {
			w.emit("• "+text, bodySize, leftMargin)
		}
	}
}

// walkTable places each row's cells on one baseline at fixed column
// offsets, which the geometric table detector reassembles into a table.
func (w *walker) walkTable(n *html.Node) {
	var caption string
	rows := tableRows(n, &caption)

	for _, cells := range rows {
		for col, cell := range cells {
			if cell == "" {
				continue
			}
			x := leftMargin + float64(col)*colWidth
			w.placeLine(cell, bodySize, x)
		}
		w.advance(bodySize)
	}

	if caption != "" {
		w.emit("Table 1: "+caption, bodySize, leftMargin)
	}
}

// tableRows flattens a table element into rows of cell text, capturing the
// caption if present.
func tableRows(n *html.Node, caption *string) [][]string {
	var rows [][]string

	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "caption":
				*caption = textContent(node)
				return
			case "tr":
				var cells []string
				for c := node.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
						cells = append(cells, textContent(c))
					}
				}
				if len(cells) > 0 {
					rows = append(rows, cells)
				}
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)

	return rows
}

// emit places a line at the given x and advances the cursor.
func (w *walker) emit(text string, size, x float64) {
	if text == "" {
		return
	}
	w.placeLine(text, size, x)
	w.advance(size)
}

// placeLine appends a line at the current cursor without advancing it, so
// table cells can share a baseline.
func (w *walker) placeLine(text string, size, x float64) {
	width := float64(len(text)) * size * charWidth
	if width < size {
		width = size
	}
	w.lines = append(w.lines, provider.Line{
		Text:       text,
		BBox:       model.NewRect(x, w.y, x+width, w.y+size),
		GlyphSizes: []float64{size},
	})
}

// advance moves the cursor past a line of the given size.
func (w *walker) advance(size float64) {
	w.y += size * lineSpacing
}

// textContent returns the element's text with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
