// Package overlay writes per-image review artifacts: an SVG showing the
// annotated polygon over its source image. The overlays restore the
// image/polygon lineage that the flat output file does not carry,
// without changing the output schema.
package overlay

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"

	"balllabel/internal/models"
)

// Write renders the polygon over img into dir/<image-base>.svg and
// returns the written path. The SVG references the source image by
// filename rather than embedding it, so overlays stay small and stay in
// sync with the training directory.
func Write(dir string, img *models.Image, poly models.Polygon, sampleCount int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create overlay directory: %w", err)
	}

	base := filepath.Base(img.File)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create overlay file: %w", err)
	}

	xs := make([]int, len(poly))
	ys := make([]int, len(poly))
	for i, v := range poly {
		xs[i] = int(math.Round(v.X))
		ys[i] = int(math.Round(v.Y))
	}

	canvas := svg.New(f)
	canvas.Start(img.Width, img.Height)
	canvas.Title(fmt.Sprintf("%s: %d vertices, %d samples", base, len(poly), sampleCount))
	canvas.Image(0, 0, img.Width, img.Height, base)
	canvas.Polygon(xs, ys, "fill:none;stroke:red;stroke-width:1")
	canvas.End()

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close overlay file: %w", err)
	}
	return path, nil
}
