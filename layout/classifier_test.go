package layout

import (
	"testing"

	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/provider"
)

func sizedLine(text string, size float64) provider.Line {
	return provider.Line{
		Text:       text,
		BBox:       model.NewRect(0, 0, 100, size),
		GlyphSizes: []float64{size},
	}
}

func TestClassify_Heading(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name      string
		size      float64
		wantLevel int
	}{
		{"level 3 at threshold", 15, 3},  // ratio 1.25
		{"level 3 below level2", 16, 3},  // ratio ~1.33
		{"level 2 at threshold", 16.8, 2}, // ratio 1.4
		{"level 2 below level1", 20, 2},  // ratio ~1.67
		{"level 1 at threshold", 21.6, 1}, // ratio 1.8
		{"level 1 large", 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(sizedLine("Overview", tt.size), 12)
			if got.Class != ClassHeading {
				t.Fatalf("Class = %v, want heading", got.Class)
			}
			if got.HeadingLevel != tt.wantLevel {
				t.Errorf("HeadingLevel = %d, want %d (ratio %f)", got.HeadingLevel, tt.wantLevel, got.SizeRatio)
			}
		})
	}
}

func TestClassify_BodySizeIsParagraph(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	got := c.Classify(sizedLine("Regular prose here.", 12), 12)
	if got.Class != ClassParagraph {
		t.Errorf("Class = %v, want paragraph", got.Class)
	}
	if got.Text != "Regular prose here." {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestClassify_HeadingLevelMonotoneInRatio(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	prevLevel := 0
	prevRatio := 0.0
	for _, size := range []float64{15, 17, 19, 22, 26, 30} {
		got := c.Classify(sizedLine("H", size), 12)
		if got.Class != ClassHeading {
			t.Fatalf("size %f should be a heading", size)
		}
		if prevLevel != 0 && got.SizeRatio > prevRatio && got.HeadingLevel > prevLevel {
			t.Errorf("level increased from %d to %d while ratio grew %f -> %f",
				prevLevel, got.HeadingLevel, prevRatio, got.SizeRatio)
		}
		prevLevel, prevRatio = got.HeadingLevel, got.SizeRatio
	}
}

func TestClassify_NumberedMarkers(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		line     string
		wantText string
	}{
		{"1. First item", "First item"},
		{"2) Second item", "Second item"},
		{"  10. Tenth item", "Tenth item"},
		{"a) Lettered item", "Lettered item"},
		{"B. Upper lettered", "Upper lettered"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := c.Classify(sizedLine(tt.line, 12), 12)
			if got.Class != ClassNumberedItem {
				t.Fatalf("Class = %v, want numbered", got.Class)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestClassify_BulletMarkers(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		line     string
		wantText string
	}{
		{"- dash item", "dash item"},
		{"• disc item", "disc item"},
		{"* star item", "star item"},
		{"– en-dash item", "en-dash item"},
		{"▪ square item", "square item"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := c.Classify(sizedLine(tt.line, 12), 12)
			if got.Class != ClassBulletItem {
				t.Fatalf("Class = %v, want bullet (got %v for %q)", got.Class, got.Class, tt.line)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestClassify_MarkerRequiresSpace(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// "3.14159" and "-quoted" have no space after the would-be marker.
	for _, line := range []string{"3.14159 is pi", "-nospace"} {
		got := c.Classify(sizedLine(line, 12), 12)
		if got.Class == ClassNumberedItem || got.Class == ClassBulletItem {
			t.Errorf("%q classified as list item", line)
		}
	}
}

func TestClassify_Captions(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	captions := []string{
		"Table 1: Quarterly results",
		"table 2. Lowercase works",
		"Figure 3 - Architecture",
		"Fig. 4: Short form",
		"  Figure 12: Indented",
	}
	for _, line := range captions {
		got := c.Classify(sizedLine(line, 12), 12)
		if got.Class != ClassCaption {
			t.Errorf("%q classified as %v, want caption", line, got.Class)
		}
	}

	notCaptions := []string{
		"Tables are useful",
		"Figurative language",
		"Table: missing number",
	}
	for _, line := range notCaptions {
		got := c.Classify(sizedLine(line, 12), 12)
		if got.Class == ClassCaption {
			t.Errorf("%q classified as caption", line)
		}
	}
}

func TestClassify_HeadingWinsOverMarker(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	// A large line that happens to start with a numbered marker is still a
	// heading: the heading test runs first.
	got := c.Classify(sizedLine("1. Introduction", 24), 12)
	if got.Class != ClassHeading {
		t.Errorf("Class = %v, want heading", got.Class)
	}
}

func TestClassify_ZeroBodyMedian(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	got := c.Classify(sizedLine("text", 12), 0)
	if got.Class != ClassParagraph {
		t.Errorf("Class = %v, want paragraph when body median is degenerate", got.Class)
	}
}

func TestNormalizeText_FullWidthDigits(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	// Full-width "１．" NFKC-normalizes to "1." so the marker matches.
	got := c.Classify(sizedLine("１. Item text", 12), 12)
	if got.Class != ClassNumberedItem {
		t.Errorf("Class = %v, want numbered after NFKC normalization", got.Class)
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(provider.Line{Text: "   \t "}) {
		t.Error("whitespace-only line should be blank")
	}
	if IsBlank(provider.Line{Text: " x "}) {
		t.Error("line with text should not be blank")
	}
}

func TestSortReadingOrder(t *testing.T) {
	lines := []provider.Line{
		{Text: "C", BBox: model.NewRect(10, 40, 50, 52)},
		{Text: "B", BBox: model.NewRect(60, 10, 100, 22)},
		{Text: "A", BBox: model.NewRect(10, 10, 50, 22)},
	}
	sorted := SortReadingOrder(lines)
	got := sorted[0].Text + sorted[1].Text + sorted[2].Text
	if got != "ABC" {
		t.Errorf("reading order = %q, want \"ABC\"", got)
	}
	// Input untouched.
	if lines[0].Text != "C" {
		t.Error("SortReadingOrder modified its input")
	}
}
