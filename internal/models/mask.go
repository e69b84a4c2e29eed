package models

// Mask is a per-pixel boolean occupancy grid with the same spatial shape
// as the image it was rasterized for: true where the pixel lies inside
// the annotated polygon.
type Mask struct {
	Width  int
	Height int

	// Inside holds the occupancy bits in row-major (y, x) order.
	Inside []bool
}

// NewMask returns an all-false mask of the given spatial shape.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Inside: make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) lies inside the polygon.
func (m *Mask) At(x, y int) bool {
	return m.Inside[y*m.Width+x]
}

// Set marks the pixel at (x, y) as inside or outside the polygon.
func (m *Mask) Set(x, y int, inside bool) {
	m.Inside[y*m.Width+x] = inside
}

// Count returns the number of pixels inside the polygon.
func (m *Mask) Count() int {
	n := 0
	for _, in := range m.Inside {
		if in {
			n++
		}
	}
	return n
}
