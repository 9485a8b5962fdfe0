package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docskel/provider"
)

// LineClass is the structural role assigned to a text line.
type LineClass int

const (
	ClassParagraph LineClass = iota
	ClassHeading
	ClassBulletItem
	ClassNumberedItem
	ClassCaption
)

// String returns a short name for the class.
func (c LineClass) String() string {
	switch c {
	case ClassHeading:
		return "heading"
	case ClassBulletItem:
		return "bullet"
	case ClassNumberedItem:
		return "numbered"
	case ClassCaption:
		return "caption"
	default:
		return "paragraph"
	}
}

// Classification is the result of classifying a single line.
type Classification struct {
	// Class is the assigned structural role.
	Class LineClass

	// Text is the line text with any list marker stripped and whitespace
	// trimmed. For headings, captions and paragraphs it is the full
	// trimmed text.
	Text string

	// HeadingLevel is 1-3 for ClassHeading, 0 otherwise.
	HeadingLevel int

	// SizeRatio is the line's font size divided by the body median.
	SizeRatio float64
}

// Config holds the classifier thresholds. Heading level is a non-increasing
// function of the size ratio: ratios at or above Level1Ratio map to level 1,
// at or above Level2Ratio to level 2, and anything at or above
// HeadingSizeRatio to level 3.
type Config struct {
	// HeadingSizeRatio is the minimum size ratio for a line to be a
	// heading at all.
	HeadingSizeRatio float64

	// Level2Ratio and Level1Ratio promote headings to levels 2 and 1.
	Level2Ratio float64
	Level1Ratio float64
}

// DefaultConfig returns the default classifier thresholds.
func DefaultConfig() Config {
	return Config{
		HeadingSizeRatio: 1.25,
		Level2Ratio:      1.4,
		Level1Ratio:      1.8,
	}
}

var (
	numberedMarkerRe = regexp.MustCompile(`^\s*(\d+[.)]|[A-Za-z][.)])\s+`)
	bulletMarkerRe   = regexp.MustCompile(`^\s*[-–•▪●□■➤*]\s+`)
	captionRe        = regexp.MustCompile(`(?i)^\s*(Table|Fig(?:ure)?\.?)\s*\d+[:.\-\s]`)
)

// Classifier assigns structural roles to lines. It is stateless apart from
// its configuration and safe for concurrent use.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify assigns a structural role to a line given the document body
// median font size. Tests are applied in precedence order: heading, list
// marker, caption, then paragraph as the fallback.
func (c *Classifier) Classify(line provider.Line, bodyMedian float64) Classification {
	text := NormalizeText(line.Text)

	ratio := 0.0
	if bodyMedian > 0 {
		ratio = line.Size() / bodyMedian
	}

	if ratio >= c.config.HeadingSizeRatio {
		return Classification{
			Class:        ClassHeading,
			Text:         text,
			HeadingLevel: c.headingLevel(ratio),
			SizeRatio:    ratio,
		}
	}

	if m := numberedMarkerRe.FindString(text); m != "" {
		return Classification{
			Class:     ClassNumberedItem,
			Text:      strings.TrimSpace(text[len(m):]),
			SizeRatio: ratio,
		}
	}

	if m := bulletMarkerRe.FindString(text); m != "" {
		return Classification{
			Class:     ClassBulletItem,
			Text:      strings.TrimSpace(text[len(m):]),
			SizeRatio: ratio,
		}
	}

	if captionRe.MatchString(text) {
		return Classification{
			Class:     ClassCaption,
			Text:      text,
			SizeRatio: ratio,
		}
	}

	return Classification{
		Class:     ClassParagraph,
		Text:      text,
		SizeRatio: ratio,
	}
}

// headingLevel maps a size ratio to a heading level 1-3. Larger ratios give
// smaller (more prominent) levels.
func (c *Classifier) headingLevel(ratio float64) int {
	switch {
	case ratio >= c.config.Level1Ratio:
		return 1
	case ratio >= c.config.Level2Ratio:
		return 2
	default:
		return 3
	}
}

// NormalizeText applies NFKC normalization and trims surrounding whitespace,
// so full-width digits and compatibility forms match the marker patterns.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// IsBlank reports whether a line contains no visible text. Blank lines are
// skipped entirely during assembly and do not break list or paragraph
// continuity.
func IsBlank(line provider.Line) bool {
	return strings.TrimSpace(line.Text) == ""
}
