// Package fontstats computes document-wide font size statistics used as the
// baseline for heading detection.
//
// A single body-text size is estimated for the whole document rather than
// per page: local medians are noisier and mis-classify headings on pages
// dominated by images or tables.
package fontstats

import (
	"math"
	"sort"

	"github.com/tsawler/docskel/provider"
)

// DefaultBodySize is the fallback body text size used when a document
// exposes no usable font sizes at all.
const DefaultBodySize = 12.0

// Percentile returns the p-th percentile (p in [0,1]) of values using
// linear interpolation between order statistics. It returns 0 for an empty
// slice. The input is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := float64(len(sorted)-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Median returns the median of values, 0 for an empty slice.
func Median(values []float64) float64 {
	return Percentile(values, 0.5)
}

// BodyMedian estimates the document's body text size as the median of the
// effective sizes of all lines. Lines with non-positive sizes are ignored;
// when nothing usable remains, DefaultBodySize is returned.
func BodyMedian(lines []provider.Line) float64 {
	sizes := make([]float64, 0, len(lines))
	for _, l := range lines {
		if s := l.Size(); s > 0 {
			sizes = append(sizes, s)
		}
	}
	if len(sizes) == 0 {
		return DefaultBodySize
	}
	return Median(sizes)
}

// MedianLineHeight returns the median bounding-box height of the lines,
// used to derive resolution-independent geometric tolerances. Zero-height
// lines are ignored; the fallback is DefaultBodySize.
func MedianLineHeight(lines []provider.Line) float64 {
	heights := make([]float64, 0, len(lines))
	for _, l := range lines {
		if h := l.BBox.Height(); h > 0 {
			heights = append(heights, h)
		}
	}
	if len(heights) == 0 {
		return DefaultBodySize
	}
	return Median(heights)
}
