package models

// Image is a decoded training image held as a dense numeric plane.
// Channel values are 8-bit intensities (0-255) stored as float64 so that
// downstream numeric code can consume them without further conversion.
type Image struct {
	// File is the path the image was decoded from, carried along so that
	// errors and review artifacts can name their source.
	File string

	// Width and Height are the spatial dimensions in pixels.
	Width  int
	Height int

	// Channels is the number of values per pixel: 1 for grayscale
	// sources, 3 for opaque color sources, 4 for sources that carry an
	// alpha channel. It is a property of the decoded file, not of
	// configuration.
	Channels int

	// Pix holds the channel values in row-major (y, x, c) order.
	// Length is Height*Width*Channels.
	Pix []float64
}

// At returns the channel vector of the pixel at (x, y). The returned
// slice aliases the image's backing store and must not be modified.
func (im *Image) At(x, y int) []float64 {
	base := (y*im.Width + x) * im.Channels
	return im.Pix[base : base+im.Channels]
}
