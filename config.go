package docskel

import (
	"github.com/tsawler/docskel/images"
	"github.com/tsawler/docskel/layout"
	"github.com/tsawler/docskel/tables"
)

// Config aggregates all extraction thresholds. Thresholds live here, per
// parser, rather than in package-level state, so documents with different
// tuning can be processed concurrently without interference.
type Config struct {
	// Classifier holds the heading/list/caption thresholds.
	Classifier layout.Config

	// Tables holds the geometric table detector tolerances.
	Tables tables.Config

	// Images holds the image/OCR classification thresholds.
	Images images.Config

	// MaxWordsPerParagraph soft-splits a single line's paragraph into
	// multiple blocks when its word count exceeds this cap. Splits land
	// on word boundaries; no word is ever broken.
	MaxWordsPerParagraph int

	// PageWidth and PageHeight are the fallback page dimensions used to
	// estimate page area when a page carries no text at all.
	PageWidth  float64
	PageHeight float64
}

// DefaultConfig returns the default extraction configuration. The defaults
// are tunable starting points, not contracts; callers with unusual corpora
// are expected to adjust them.
func DefaultConfig() Config {
	return Config{
		Classifier:           layout.DefaultConfig(),
		Tables:               tables.DefaultConfig(),
		Images:               images.DefaultConfig(),
		MaxWordsPerParagraph: 800,
		PageWidth:            612, // US Letter in points
		PageHeight:           792,
	}
}
