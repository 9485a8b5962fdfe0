package layout

import (
	"sort"

	"github.com/tsawler/docskel/provider"
)

// SortReadingOrder sorts lines into top-to-bottom, left-to-right reading
// order: by top edge first, then by left edge for lines sharing a top edge.
// A copy is returned; the input is not modified.
func SortReadingOrder(lines []provider.Line) []provider.Line {
	sorted := make([]provider.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Top() != sorted[j].BBox.Top() {
			return sorted[i].BBox.Top() < sorted[j].BBox.Top()
		}
		return sorted[i].BBox.Left() < sorted[j].BBox.Left()
	})
	return sorted
}
