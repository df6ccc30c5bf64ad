package sim

import "fmt"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) String() string {
	return fmt.Sprintf("{x: %g, y: %g, w: %g, h: %g}", r.X, r.Y, r.W, r.H)
}

// Contains reports whether inner lies entirely within r, edges included.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.X+inner.W <= r.X+r.W && inner.Y+inner.H <= r.Y+r.H
}

// Overlaps reports whether a and b intersect. Two rects overlap unless one lies
// strictly left of, right of, above or below the other, so rects sharing an
// edge overlap. The relation is symmetric and every rect overlaps itself.
func Overlaps(a, b Rect) bool {
	separated := a.X+a.W < b.X ||
		b.X+b.W < a.X ||
		a.Y+a.H < b.Y ||
		b.Y+b.H < a.Y
	return !separated
}
