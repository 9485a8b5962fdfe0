// Package images classifies image regions and decides how recognized text
// attaches to the document flow.
//
// Regions are classified by their area relative to the page. Tiny regions
// (logos, icons, decorations) are never OCRed. Larger regions are run
// through the optional OCR capability; output that looks like meaningful
// prose ("texty") is attached either directly to the image block (full-page
// scans and slides) or as a separate linked paragraph, so downstream
// consumers can treat it as narrative text while tracing provenance.
//
// OCR failures are treated as "no usable text" and never surface as
// document-level errors. When no OCR capability is configured at all, every
// region takes the no-OCR path.
package images

import (
	"bytes"
	"image"
	"log/slog"
	"strings"
	"unicode"

	// Register decoders beyond the stdlib set so pixel dimensions can be
	// read from the formats PDF rasters commonly arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/docskel/provider"
)

// Attachment describes how a region's recognized text joins the skeleton.
type Attachment int

const (
	// AttachNone: emit the image block alone, no text.
	AttachNone Attachment = iota

	// AttachInline: recognized text goes on the image block itself.
	AttachInline

	// AttachLinked: emit the image block plus a separate paragraph block
	// that references the image id.
	AttachLinked
)

// Config holds the image classification thresholds.
type Config struct {
	// TinyThreshold is the page-area ratio below which a region is
	// treated as decoration and OCR is skipped. The boundary is
	// inclusive on the attempt side: a ratio exactly at the threshold
	// attempts OCR.
	TinyThreshold float64

	// LargeThreshold is the page-area ratio at or above which texty
	// recognized text is attached inline (full-page scan/slide).
	LargeThreshold float64

	// Texty heuristics: OCR output qualifies as prose when any of these
	// hold: at least MinChars non-whitespace characters, at least
	// MinLines lines, or at least MinWords words with an alphanumeric
	// ratio of at least MinAlnumRatio.
	MinChars      int
	MinLines      int
	MinWords      int
	MinAlnumRatio float64
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		TinyThreshold:  0.05,
		LargeThreshold: 0.40,
		MinChars:       80,
		MinLines:       3,
		MinWords:       12,
		MinAlnumRatio:  0.60,
	}
}

// Result is the outcome of processing one image region.
type Result struct {
	// Attachment says where the recognized text (if any) belongs.
	Attachment Attachment

	// Text is the recognized text; empty unless Attachment is
	// AttachInline or AttachLinked.
	Text string

	// AreaRatio is the region's area divided by the page area.
	AreaRatio float64

	// Format, PixelWidth and PixelHeight describe the raster when it
	// decodes; Format is empty otherwise.
	Format      string
	PixelWidth  int
	PixelHeight int
}

// Processor classifies image regions. It is safe for concurrent use.
type Processor struct {
	config Config
	ocr    provider.OCR // nil when no capability is configured
	logger *slog.Logger
}

// NewProcessor creates a processor. ocr may be nil, in which case no region
// is ever OCRed. logger may be nil; slog.Default() is used then.
func NewProcessor(config Config, ocr provider.OCR, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{config: config, ocr: ocr, logger: logger}
}

// Process classifies one region against the page area and runs OCR when
// warranted. pageArea must be the area of the page's estimated bounding
// rectangle; a non-positive page area degrades to the no-OCR path.
func (p *Processor) Process(region provider.ImageRegion, pageArea float64) Result {
	res := Result{}
	p.sniffRaster(region.Data, &res)

	if pageArea > 0 {
		res.AreaRatio = region.BBox.Area() / pageArea
	}

	if p.ocr == nil || pageArea <= 0 || res.AreaRatio < p.config.TinyThreshold {
		return res
	}

	text, err := p.ocr.Recognize(region.Data)
	if err != nil {
		p.logger.Debug("ocr failed, treating as no usable text", "error", err)
		return res
	}
	text = strings.TrimSpace(text)
	if !p.isTexty(text) {
		return res
	}

	res.Text = text
	if res.AreaRatio >= p.config.LargeThreshold {
		res.Attachment = AttachInline
	} else {
		res.Attachment = AttachLinked
	}
	return res
}

// isTexty reports whether OCR output looks like meaningful prose rather
// than noise or artifacts.
func (p *Processor) isTexty(text string) bool {
	if text == "" {
		return false
	}

	nonWS := 0
	alnum := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonWS++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}

	if nonWS >= p.config.MinChars {
		return true
	}
	if len(strings.Split(text, "\n")) >= p.config.MinLines {
		return true
	}

	words := len(strings.Fields(text))
	if words >= p.config.MinWords && nonWS > 0 &&
		float64(alnum)/float64(nonWS) >= p.config.MinAlnumRatio {
		return true
	}
	return false
}

// sniffRaster records format and pixel dimensions when the bytes decode as
// a known image format. Undecodable bytes are not an error; the region is
// still emitted as an image block.
func (p *Processor) sniffRaster(data []byte, res *Result) {
	if len(data) == 0 {
		return
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return
	}
	res.Format = format
	res.PixelWidth = cfg.Width
	res.PixelHeight = cfg.Height
}
