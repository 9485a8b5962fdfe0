package provider

import (
	"testing"

	"github.com/tsawler/docskel/model"
)

func TestLine_Size_FromGlyphs(t *testing.T) {
	l := Line{
		Text:       "hello",
		BBox:       model.NewRect(0, 0, 50, 14),
		GlyphSizes: []float64{10, 12, 14},
	}
	if got := l.Size(); got != 12 {
		t.Errorf("Size() = %f, want 12 (mean of glyph sizes)", got)
	}
}

func TestLine_Size_FallbackToHeight(t *testing.T) {
	l := Line{
		Text: "hello",
		BBox: model.NewRect(0, 100, 50, 111),
	}
	if got := l.Size(); got != 11 {
		t.Errorf("Size() = %f, want 11 (bbox height)", got)
	}
}
