package models

// Vertex is a single polygon vertex in image pixel coordinates.
// The origin is the top-left corner of the image, x growing right and
// y growing down, matching the raster scan order used everywhere else.
type Vertex struct {
	X float64
	Y float64
}

// Polygon is an ordered vertex sequence describing a region of interest.
// The polygon is implicitly closed: the last vertex connects back to the
// first. A polygon needs at least 3 vertices to enclose any area.
type Polygon []Vertex

// Bounds returns the polygon's axis-aligned bounding box as
// (minX, minY, maxX, maxY). Calling Bounds on an empty polygon returns
// all zeros.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p[0].X, p[0].X
	minY, maxY = p[0].Y, p[0].Y
	for _, v := range p[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	return minX, minY, maxX, maxY
}
