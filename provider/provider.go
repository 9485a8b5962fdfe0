// Package provider defines the contracts between the skeleton extractor and
// the rendering/OCR backends that feed it.
//
// The extractor never opens or interprets a document container format
// itself. A [PageTextProvider] supplies positioned text lines and image
// regions per page; an optional [OCR] capability recognizes text in image
// bytes. Concrete providers live in the pdfprovider and htmlprovider
// packages, and callers may inject their own.
package provider

import "github.com/tsawler/docskel/model"

// Line is a positioned line of text on a page. GlyphSizes carries the font
// size of each glyph (or run of glyphs) when the backend exposes them; when
// empty, the line's bounding-box height serves as the size proxy.
type Line struct {
	Text       string
	BBox       model.Rect
	GlyphSizes []float64
}

// Size returns the line's effective font size: the mean of the reported
// glyph sizes, falling back to the bounding-box height.
func (l Line) Size() float64 {
	if len(l.GlyphSizes) == 0 {
		return l.BBox.Height()
	}
	sum := 0.0
	for _, s := range l.GlyphSizes {
		sum += s
	}
	return sum / float64(len(l.GlyphSizes))
}

// ImageRegion is a raster image placed on a page.
type ImageRegion struct {
	BBox model.Rect
	Data []byte
}

// PageTextProvider supplies per-page content for a document. Page indexes
// are 0-based. Implementations must tolerate being read page by page in
// order; resources backing a page should not be required to outlive the
// calls for that page.
type PageTextProvider interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Lines returns the text lines on a page. Order is not significant;
	// the extractor sorts into reading order itself.
	Lines(pageIndex int) ([]Line, error)

	// ImageRegions returns the image regions on a page.
	ImageRegions(pageIndex int) ([]ImageRegion, error)
}

// OCR is the optional text-recognition capability. Implementations return
// the recognized text, or an empty string when nothing was recognized.
// Errors are treated by the extractor as "no usable text", never as
// document-level failures.
type OCR interface {
	Recognize(image []byte) (string, error)
}
