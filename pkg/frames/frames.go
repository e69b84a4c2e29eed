// Package frames splits a video into still images suitable for the
// labeling loop, reconstructing the step that usually produced the
// training directory in the first place.
package frames

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options controls frame extraction.
type Options struct {
	// Video is the input video path.
	Video string

	// OutDir receives the extracted frames as numbered PNG files.
	OutDir string

	// FPS is the sampling rate in frames per second. Zero or negative
	// means 1.
	FPS int

	// MaxWidth, when positive, scales frames down to this width while
	// preserving aspect ratio.
	MaxWidth int
}

// outputArgs builds the ffmpeg output arguments for opts: a PNG
// image2pipe stream at the requested rate, optionally rescaled.
func outputArgs(opts Options) ffmpeg.KwArgs {
	fps := opts.FPS
	if fps <= 0 {
		fps = 1
	}
	args := ffmpeg.KwArgs{
		"format": "image2pipe",
		"vcodec": "png",
		"r":      strconv.Itoa(fps),
	}
	if opts.MaxWidth > 0 {
		args["vf"] = fmt.Sprintf("scale=%d:-1", opts.MaxWidth)
	}
	return args
}

// framePath returns the output path of the n-th extracted frame. The
// zero-padded index keeps the lexicographic enumeration of the training
// directory aligned with frame order.
func framePath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", n))
}

// Extract decodes frames from the video into opts.OutDir and returns the
// number of frames written. ffmpeg streams PNG frames through a pipe;
// each one is decoded and re-encoded to its own numbered file.
func Extract(ctx context.Context, opts Options) (int, error) {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create frame directory: %w", err)
	}

	pr, pw := io.Pipe()
	errCh := make(chan error, 1)
	go func() {
		err := ffmpeg.Input(opts.Video).
			Output("pipe:1", outputArgs(opts)).
			WithOutput(pw).
			WithErrorOutput(io.Discard).
			Run()
		pw.CloseWithError(err)
		errCh <- err
	}()

	count := 0
	br := bufio.NewReader(pr)
	for {
		if err := ctx.Err(); err != nil {
			pr.CloseWithError(err)
			<-errCh
			return count, err
		}

		img, err := png.Decode(br)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			pr.CloseWithError(err)
			<-errCh
			return count, fmt.Errorf("failed to decode frame %d: %w", count, err)
		}

		f, err := os.Create(framePath(opts.OutDir, count))
		if err != nil {
			pr.CloseWithError(err)
			<-errCh
			return count, fmt.Errorf("failed to create frame file: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			pr.CloseWithError(err)
			<-errCh
			return count, fmt.Errorf("failed to encode frame %d: %w", count, err)
		}
		if err := f.Close(); err != nil {
			pr.CloseWithError(err)
			<-errCh
			return count, fmt.Errorf("failed to close frame file: %w", err)
		}
		count++
	}

	if err := <-errCh; err != nil {
		return count, fmt.Errorf("ffmpeg extraction failed: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("no frames decoded from %s", opts.Video)
	}
	return count, nil
}
