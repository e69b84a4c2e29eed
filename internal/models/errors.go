package models

import "fmt"

// DecodeError reports a directory entry whose content could not be
// decoded as an image. Decode failures are never skipped: the run aborts
// so the operator can fix or remove the offending file.
type DecodeError struct {
	// File is the path of the entry that failed to decode.
	File string

	// Err is the underlying decoder or file-system error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode image %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidPolygonError reports a polygon closed with fewer than the 3
// vertices needed to enclose any region. Under-specified polygons are an
// error, not an empty mask; a polygon with 3 or more vertices but zero
// enclosed area is valid and simply selects no pixels.
type InvalidPolygonError struct {
	// Vertices is the number of vertices the operator placed.
	Vertices int
}

func (e *InvalidPolygonError) Error() string {
	return fmt.Sprintf("polygon closed with %d vertices, need at least 3", e.Vertices)
}

// ShapeMismatchError reports a mask whose spatial dimensions disagree
// with the image it is applied to. This indicates a rasterizer or
// image-loading defect rather than bad input data.
type ShapeMismatchError struct {
	MaskWidth   int
	MaskHeight  int
	ImageWidth  int
	ImageHeight int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mask shape %dx%d does not match image shape %dx%d",
		e.MaskWidth, e.MaskHeight, e.ImageWidth, e.ImageHeight)
}

// SchemaMismatchError reports samples whose channel count differs from
// the dataset's established column count, for example when an image with
// an alpha channel slips into an otherwise opaque training set.
type SchemaMismatchError struct {
	// Want is the column count fixed by the first appended sample.
	Want int

	// Got is the offending sample's channel count.
	Got int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("sample has %d channels, dataset has %d columns", e.Got, e.Want)
}
