package labeling

import (
	"encoding/csv"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"balllabel/internal/models"
	"balllabel/pkg/dataset"
	"balllabel/pkg/roi"
)

// writePNG encodes img to path, failing the test on any error.
func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

// opaqueImage builds a fully opaque 3-channel test image whose pixel
// values encode their coordinates.
func opaqueImage(width, height int, offset uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := offset + uint8(y*10+x)
			img.SetRGBA(x, y, color.RGBA{R: v, G: 100 + v, B: 200 - v, A: 255})
		}
	}
	return img
}

// squareROI is the polygon enclosing the 2x2 top-left pixel block.
var squareROI = models.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}

// degenerateROI has 3 vertices but zero enclosed area.
var degenerateROI = models.Polygon{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 1, Y: 0}}

// readCSV parses a written dataset file into float64 rows.
func readCSV(t *testing.T, path string) [][]float64 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}

	rows := make([][]float64, len(records))
	for i, record := range records {
		rows[i] = make([]float64, len(record))
		for c, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				t.Fatalf("Row %d col %d: unparsable field %q", i, c, field)
			}
			rows[i][c] = v
		}
	}
	return rows
}

// TestTwoImageRun verifies the full pipeline over two 4x4 images: one
// polygon masking the 2x2 top-left block, one degenerate polygon
// masking nothing. The output must hold exactly image A's block pixels
// in row-major order.
func TestTwoImageRun(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))
	writePNG(t, filepath.Join(inputDir, "b.png"), opaqueImage(4, 4, 30))

	output := filepath.Join(t.TempDir(), "ball.csv")
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: output,
		Capturer:   &roi.Scripted{Polygons: []models.Polygon{squareROI, degenerateROI}},
	})

	if err := labeler.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	rows := readCSV(t, output)
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}

	// Image A's top-left 2x2 block in row-major scan order.
	wantPixels := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, at := range wantPixels {
		v := float64(at[1]*10 + at[0])
		want := []float64{v, 100 + v, 200 - v}
		if len(rows[i]) != 3 {
			t.Fatalf("Row %d: expected 3 columns, got %d", i, len(rows[i]))
		}
		for c := range want {
			if rows[i][c] != want[c] {
				t.Errorf("Row %d col %d: expected %v, got %v", i, c, want[c], rows[i][c])
			}
		}
	}

	// The in-memory dataset matches what was serialized.
	if labeler.Dataset().Rows() != 4 {
		t.Errorf("Expected 4 accumulated rows, got %d", labeler.Dataset().Rows())
	}
}

// TestUndecodableImageAborts verifies that a non-decodable entry aborts
// the run with a DecodeError naming the file and produces no output.
func TestUndecodableImageAborts(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))
	badPath := filepath.Join(inputDir, "b.dat")
	if err := os.WriteFile(badPath, []byte("corrupt"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	output := filepath.Join(t.TempDir(), "ball.csv")
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: output,
		Capturer:   &roi.Scripted{Polygons: []models.Polygon{squareROI, squareROI}},
	})

	err := labeler.Process()
	if err == nil {
		t.Fatal("Expected decode error, got nil")
	}

	var decodeErr *models.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected DecodeError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "b.dat") {
		t.Errorf("Expected error to name the offending file, got %q", err.Error())
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("Expected no output file after aborted run")
	}
}

// TestMixedChannelCountsAbort verifies that an image with an alpha
// channel among opaque ones trips the schema guard on its append and
// leaves no mixed-schema output behind.
func TestMixedChannelCountsAbort(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))

	alpha := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			alpha.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
		}
	}
	writePNG(t, filepath.Join(inputDir, "b.png"), alpha)

	output := filepath.Join(t.TempDir(), "ball.csv")
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: output,
		Capturer:   &roi.Scripted{Polygons: []models.Polygon{squareROI, squareROI}},
	})

	err := labeler.Process()
	if err == nil {
		t.Fatal("Expected schema mismatch error, got nil")
	}

	var schemaErr *models.SchemaMismatchError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected SchemaMismatchError, got %T: %v", err, err)
	}
	if schemaErr.Want != 3 || schemaErr.Got != 4 {
		t.Errorf("Expected want=3 got=4, found want=%d got=%d", schemaErr.Want, schemaErr.Got)
	}
	if !strings.Contains(err.Error(), "b.png") {
		t.Errorf("Expected error to name the offending file, got %q", err.Error())
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("Expected no output file after aborted run")
	}
}

// TestUnderSpecifiedPolygonAborts verifies that a polygon closed with
// fewer than 3 vertices aborts the run with an InvalidPolygonError.
func TestUnderSpecifiedPolygonAborts(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))

	output := filepath.Join(t.TempDir(), "ball.csv")
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: output,
		Capturer:   &roi.Scripted{Polygons: []models.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 1}}}},
	})

	err := labeler.Process()
	var polyErr *models.InvalidPolygonError
	if !errors.As(err, &polyErr) {
		t.Fatalf("Expected InvalidPolygonError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "a.png") {
		t.Errorf("Expected error to name the image being annotated, got %q", err.Error())
	}
}

// abortingCapturer simulates the operator abandoning the session.
type abortingCapturer struct{}

func (abortingCapturer) Capture(img *models.Image) (models.Polygon, error) {
	return nil, roi.ErrAborted
}

// TestOperatorAbortDiscardsRun verifies the documented abandonment
// policy: the run aborts and no output file is written.
func TestOperatorAbortDiscardsRun(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))

	output := filepath.Join(t.TempDir(), "ball.csv")
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: output,
		Capturer:   abortingCapturer{},
	})

	err := labeler.Process()
	if !errors.Is(err, roi.ErrAborted) {
		t.Fatalf("Expected ErrAborted, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("Expected no output file after operator abort")
	}
}

// TestCheckpointLifecycle verifies that checkpoints exist during a run
// with checkpointing enabled and are removed once the final write
// succeeds.
func TestCheckpointLifecycle(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))

	outDir := t.TempDir()
	output := filepath.Join(outDir, "ball.csv")
	session := uuid.New()
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: output,
		Capturer:   &roi.Scripted{Polygons: []models.Polygon{squareROI}},
		Checkpoint: true,
		Session:    session,
	})

	if err := labeler.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("Expected final output file: %v", err)
	}
	checkpoint := dataset.CheckpointPath(output, session)
	if _, err := os.Stat(checkpoint); !os.IsNotExist(err) {
		t.Errorf("Expected checkpoint %s to be removed after the final write", checkpoint)
	}
}

// TestOverlayArtifacts verifies that overlay SVGs are written alongside
// a successful run.
func TestOverlayArtifacts(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "a.png"), opaqueImage(4, 4, 0))

	outDir := t.TempDir()
	overlayDir := filepath.Join(outDir, "overlays")
	labeler := NewLabeler(&Params{
		InputDir:   inputDir,
		OutputFile: filepath.Join(outDir, "ball.csv"),
		Capturer:   &roi.Scripted{Polygons: []models.Polygon{squareROI}},
		OverlayDir: overlayDir,
	})

	if err := labeler.Process(); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(overlayDir, "a.svg"))
	if err != nil {
		t.Fatalf("Expected overlay file: %v", err)
	}
	if !strings.Contains(string(data), "<polygon") {
		t.Error("Expected overlay to contain the polygon element")
	}
}
