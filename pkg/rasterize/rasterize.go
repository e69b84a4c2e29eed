// Package rasterize converts a polygon into a boolean occupancy mask
// over an image plane.
package rasterize

import (
	"math"

	"balllabel/internal/models"
)

// Rasterize returns a mask of the given spatial shape, true for every
// pixel whose center (x+0.5, y+0.5) lies inside the polygon under the
// even-odd rule. It is a pure function: identical inputs always produce
// identical masks.
//
// A center exactly on an edge resolves by the half-open crossing test,
// so pixels on the polygon's top and left boundary are included and
// those on the bottom and right are not; the choice is arbitrary but
// consistent across runs.
//
// A polygon with fewer than 3 vertices or with zero enclosed area yields
// an all-false mask. That is a valid result, not an error: it propagates
// as zero extracted samples.
func Rasterize(poly models.Polygon, width, height int) *models.Mask {
	mask := models.NewMask(width, height)
	if len(poly) < 3 {
		return mask
	}

	// Only pixels inside the polygon's bounding box can be covered.
	minX, minY, maxX, maxY := poly.Bounds()
	x0 := clamp(int(math.Floor(minX)), 0, width-1)
	x1 := clamp(int(math.Ceil(maxX)), 0, width-1)
	y0 := clamp(int(math.Floor(minY)), 0, height-1)
	y1 := clamp(int(math.Ceil(maxY)), 0, height-1)

	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			if contains(poly, float64(x)+0.5, cy) {
				mask.Set(x, y, true)
			}
		}
	}

	return mask
}

// contains is the even-odd ray-crossing test: a horizontal ray from
// (px, py) toward +x crosses an odd number of edges iff the point is
// inside. The (a.Y > py) != (b.Y > py) guard makes the test half-open in
// y so shared vertices are counted exactly once.
func contains(poly models.Polygon, px, py float64) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y > py) != (b.Y > py) {
			t := (py - a.Y) / (b.Y - a.Y)
			if px < a.X+t*(b.X-a.X) {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
