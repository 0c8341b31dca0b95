// Package gfx holds the pixel-level building blocks shared by the frame
// buffer, the display transport and the watch faces: integer rectangles,
// RGB565 color packing and a small render canvas.
package gfx

// Rect is an axis-aligned pixel rectangle. W and H are extents, so the
// covered columns are [X, X+W) and rows [Y, Y+H).
type Rect struct {
	X, Y, W, H int16
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Right and Bottom are exclusive edges.
func (r Rect) Right() int16  { return r.X + r.W }
func (r Rect) Bottom() int16 { return r.Y + r.H }

// Area in pixels. int32: a full 410x502 frame exceeds int16.
func (r Rect) Area() int32 {
	if r.Empty() {
		return 0
	}
	return int32(r.W) * int32(r.H)
}

func (r Rect) Contains(x, y int16) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// In reports whether r lies entirely inside o.
func (r Rect) In(o Rect) bool {
	if r.Empty() {
		return true
	}
	return r.X >= o.X && r.Y >= o.Y && r.Right() <= o.Right() && r.Bottom() <= o.Bottom()
}

func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := min16(r.X, o.X)
	y := min16(r.Y, o.Y)
	right := max16(r.Right(), o.Right())
	bottom := max16(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Clip returns the part of r inside bounds; empty if disjoint.
func (r Rect) Clip(bounds Rect) Rect {
	x := max16(r.X, bounds.X)
	y := max16(r.Y, bounds.Y)
	right := min16(r.Right(), bounds.Right())
	bottom := min16(r.Bottom(), bounds.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}
