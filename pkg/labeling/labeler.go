// Package labeling drives the annotation pipeline: enumerate the
// training directory, collect one polygon per image, rasterize it,
// extract the masked pixels' color vectors, accumulate them, and write
// the dataset once at the end.
package labeling

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"balllabel/pkg/dataset"
	"balllabel/pkg/extract"
	"balllabel/pkg/imageset"
	"balllabel/pkg/overlay"
	"balllabel/pkg/rasterize"
	"balllabel/pkg/roi"
)

// Params holds the labeling run configuration.
type Params struct {
	// InputDir is the training image directory.
	InputDir string

	// OutputFile is the path of the delimited sample table, written
	// exactly once after the last image is processed.
	OutputFile string

	// Capturer collects one polygon per image.
	Capturer roi.Capturer

	// Delimiter separates output fields. Zero means ','.
	Delimiter rune

	// Checkpoint enables flushing the accumulated rows to a session
	// side file after every image, so an abandoned run does not lose
	// all progress.
	Checkpoint bool

	// OverlayDir, when non-empty, receives a polygon overlay SVG per
	// annotated image.
	OverlayDir string

	// Session identifies this run in checkpoint file names. Zero means
	// a fresh random id.
	Session uuid.UUID
}

// Labeler runs the annotation pipeline over a training directory.
//
// The pipeline is a single linear pass: images are handled strictly one
// at a time, and polygon capture is the only point where the run blocks
// on the operator. Any failure aborts the run before the writer runs, so
// the output file is either fully written or absent.
type Labeler struct {
	params *Params
	acc    *dataset.Accumulator
}

// NewLabeler creates a labeler for the given parameters.
func NewLabeler(params *Params) *Labeler {
	if params.Delimiter == 0 {
		params.Delimiter = ','
	}
	if params.Session == uuid.Nil {
		params.Session = uuid.New()
	}
	return &Labeler{
		params: params,
		acc:    dataset.NewAccumulator(),
	}
}

// Dataset exposes the accumulated samples, for summaries and tests.
func (l *Labeler) Dataset() *dataset.Accumulator { return l.acc }

// Session returns the run's session id.
func (l *Labeler) Session() uuid.UUID { return l.params.Session }

// Process runs the complete labeling pipeline.
func (l *Labeler) Process() error {
	// Step 1: Enumerate the training directory.
	fmt.Println("Step 1: Enumerating training images...")
	files, err := imageset.List(l.params.InputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d images in %s\n", len(files), l.params.InputDir)

	// Step 2: Annotate each image in order.
	fmt.Println("Step 2: Annotating images...")
	var checkpointPath string
	for i, file := range files {
		fmt.Printf("Image %d/%d: %s\n", i+1, len(files), filepath.Base(file))

		img, err := imageset.Load(file)
		if err != nil {
			// DecodeError already names the file.
			return err
		}

		poly, err := l.params.Capturer.Capture(img)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		mask := rasterize.Rasterize(poly, img.Width, img.Height)
		samples, err := extract.Samples(img, mask)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if err := l.acc.Append(samples); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		fmt.Printf("  %d samples extracted (%d total)\n", len(samples), l.acc.Rows())

		if l.params.OverlayDir != "" {
			if _, err := overlay.Write(l.params.OverlayDir, img, poly, len(samples)); err != nil {
				fmt.Printf("Warning: failed to save overlay for %s: %v\n", filepath.Base(file), err)
			}
		}

		if l.params.Checkpoint {
			path, err := l.acc.Checkpoint(l.params.OutputFile, l.params.Session, l.params.Delimiter)
			if err != nil {
				fmt.Printf("Warning: failed to write checkpoint: %v\n", err)
			} else {
				checkpointPath = path
			}
		}
	}

	// Step 3: Serialize the dataset, exactly once.
	fmt.Println("Step 3: Writing dataset...")
	if err := l.acc.WriteFile(l.params.OutputFile, l.params.Delimiter); err != nil {
		return err
	}

	// The checkpoint has served its purpose once the real output exists.
	if checkpointPath != "" {
		if err := os.Remove(checkpointPath); err != nil {
			fmt.Printf("Warning: failed to remove checkpoint %s: %v\n", checkpointPath, err)
		}
	}

	return nil
}
