// Package extract selects the color vectors of an image's masked pixels.
package extract

import "balllabel/internal/models"

// Samples returns one channel vector per masked pixel, in row-major scan
// order over the image plane. A mask with zero true entries yields zero
// samples, which is valid. The mask's spatial shape must equal the
// image's; a disagreement indicates an upstream defect and is reported
// as a ShapeMismatchError.
func Samples(img *models.Image, mask *models.Mask) ([][]float64, error) {
	if mask.Width != img.Width || mask.Height != img.Height {
		return nil, &models.ShapeMismatchError{
			MaskWidth:   mask.Width,
			MaskHeight:  mask.Height,
			ImageWidth:  img.Width,
			ImageHeight: img.Height,
		}
	}

	samples := make([][]float64, 0, mask.Count())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if !mask.At(x, y) {
				continue
			}
			s := make([]float64, img.Channels)
			copy(s, img.At(x, y))
			samples = append(samples, s)
		}
	}

	return samples, nil
}
