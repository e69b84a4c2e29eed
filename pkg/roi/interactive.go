package roi

import (
	"fmt"
	"image"
	gocolor "image/color"

	"gocv.io/x/gocv"

	"balllabel/internal/models"
)

// Interactive captures polygons through an OpenCV window. The operator
// steers a crosshair with h/j/k/l (or w/a/s/d), drops a vertex with
// space, closes the polygon with enter or f, and aborts the session with
// Esc. The step size doubles with + and halves with -.
//
// Capture blocks the calling goroutine until the operator closes the
// polygon; images are annotated strictly one at a time.
type Interactive struct {
	// WindowTitle names the annotation window. Empty means a default.
	WindowTitle string

	// Step is the initial crosshair step in pixels. Zero means 4.
	Step int
}

var (
	outlineColor   = gocolor.RGBA{R: 255, A: 255}
	crosshairColor = gocolor.RGBA{G: 255, A: 255}
)

// Capture shows the image and collects one closed polygon.
func (c *Interactive) Capture(img *models.Image) (models.Polygon, error) {
	base, err := matFromImage(img)
	if err != nil {
		return nil, err
	}
	defer base.Close()

	title := c.WindowTitle
	if title == "" {
		title = "balllabel - draw region of interest"
	}
	window := gocv.NewWindow(fmt.Sprintf("%s [%s]", title, img.File))
	defer window.Close()

	step := c.Step
	if step <= 0 {
		step = 4
	}
	cx, cy := img.Width/2, img.Height/2

	var poly models.Polygon
	for {
		frame := base.Clone()
		drawState(&frame, poly, cx, cy)
		window.IMShow(frame)
		key := window.WaitKey(30)
		frame.Close()

		switch key {
		case 27: // Esc
			return nil, ErrAborted
		case 13, 10, 'f': // close the loop
			if len(poly) < 3 {
				return nil, &models.InvalidPolygonError{Vertices: len(poly)}
			}
			return poly, nil
		case ' ':
			poly = append(poly, models.Vertex{X: float64(cx), Y: float64(cy)})
		case 'h', 'a':
			cx -= step
		case 'l', 'd':
			cx += step
		case 'k', 'w':
			cy -= step
		case 'j', 's':
			cy += step
		case '+', '=':
			step *= 2
		case '-':
			if step > 1 {
				step /= 2
			}
		}

		cx = clampInt(cx, 0, img.Width-1)
		cy = clampInt(cy, 0, img.Height-1)
	}
}

// drawState renders the placed vertices, the open outline, a rubber band
// to the crosshair, and the crosshair itself on top of the frame.
func drawState(frame *gocv.Mat, poly models.Polygon, cx, cy int) {
	for i, v := range poly {
		p := image.Pt(int(v.X), int(v.Y))
		gocv.Circle(frame, p, 3, outlineColor, -1)
		if i > 0 {
			prev := poly[i-1]
			gocv.Line(frame, image.Pt(int(prev.X), int(prev.Y)), p, outlineColor, 1)
		}
	}
	if len(poly) > 0 {
		last := poly[len(poly)-1]
		gocv.Line(frame, image.Pt(int(last.X), int(last.Y)), image.Pt(cx, cy), outlineColor, 1)
	}

	gocv.Line(frame, image.Pt(cx-6, cy), image.Pt(cx+6, cy), crosshairColor, 1)
	gocv.Line(frame, image.Pt(cx, cy-6), image.Pt(cx, cy+6), crosshairColor, 1)
}

// matFromImage converts the decoded float64 plane into an 8-bit BGR Mat
// for display. Grayscale images replicate their single channel; alpha is
// dropped for display purposes only.
func matFromImage(img *models.Image) (gocv.Mat, error) {
	data := make([]byte, img.Width*img.Height*3)
	i := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			px := img.At(x, y)
			var r, g, b float64
			if img.Channels == 1 {
				r, g, b = px[0], px[0], px[0]
			} else {
				r, g, b = px[0], px[1], px[2]
			}
			data[i] = byte(b)
			data[i+1] = byte(g)
			data[i+2] = byte(r)
			i += 3
		}
	}

	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to build display mat for %s: %w", img.File, err)
	}
	return mat, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
