// Package imageset enumerates and decodes the images of a training
// directory. Every regular entry must decode; a failure aborts the run
// rather than silently narrowing the training set.
package imageset

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Register the decoders for the common raster formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"balllabel/internal/models"
)

// List returns the labeling candidates in dir: every regular, non-hidden
// entry, sorted lexicographically by filename. The sort makes the output
// row order reproducible across file systems, which otherwise impose
// their own directory-listing order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in input directory %s", dir)
	}

	sort.Strings(files)
	return files, nil
}

// Load decodes the image at path into a dense float64 plane. Any open or
// decode failure is reported as a DecodeError naming the file; there is
// no extension filter and no skipping of unreadable entries.
func Load(path string) (*models.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DecodeError{File: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &models.DecodeError{File: path, Err: err}
	}

	return flatten(path, src), nil
}

// channelCount derives the per-pixel value count from the decoded color
// model. Sources that carry an alpha channel decode to a non-premultiplied
// RGBA model (PNG with transparency), grayscale sources to a Gray model;
// everything else is opaque color.
func channelCount(src image.Image) int {
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.NRGBA, *image.NRGBA64:
		return 4
	default:
		return 3
	}
}

// flatten copies the decoded pixels into row-major (y, x, c) float64
// order, the scan order every later stage assumes.
func flatten(path string, src image.Image) *models.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	channels := channelCount(src)

	img := &models.Image{
		File:     path,
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float64, width*height*channels),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch channels {
			case 1:
				g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
				img.Pix[i] = float64(g.Y)
				i++
			case 3:
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				img.Pix[i] = float64(c.R)
				img.Pix[i+1] = float64(c.G)
				img.Pix[i+2] = float64(c.B)
				i += 3
			default:
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				img.Pix[i] = float64(c.R)
				img.Pix[i+1] = float64(c.G)
				img.Pix[i+2] = float64(c.B)
				img.Pix[i+3] = float64(c.A)
				i += 4
			}
		}
	}

	return img
}
