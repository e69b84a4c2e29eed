// Package roi collects a region-of-interest polygon for each training
// image. The capture backend is pluggable: the interactive backend puts
// a human in the loop, while the scripted backend replays canned
// polygons so the rest of the pipeline can run without a display.
package roi

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"balllabel/internal/models"
)

// ErrAborted is returned when the operator abandons the annotation
// session. The run aborts and the in-memory dataset is discarded; only
// checkpoint files, if enabled, survive an abort.
var ErrAborted = errors.New("annotation aborted by operator")

// Capturer collects one closed polygon for an image. Capture blocks
// until the polygon is finished; there is no timeout. Closing with fewer
// than 3 vertices is an InvalidPolygonError, never an empty mask.
type Capturer interface {
	Capture(img *models.Image) (models.Polygon, error)
}

// Scripted replays a fixed polygon sequence, one polygon per captured
// image in order. It backs headless runs and tests.
type Scripted struct {
	Polygons []models.Polygon

	next int
}

// Capture returns the next scripted polygon. Running past the end of the
// script is an error: every enumerated image must receive a polygon.
func (s *Scripted) Capture(img *models.Image) (models.Polygon, error) {
	if s.next >= len(s.Polygons) {
		return nil, fmt.Errorf("roi script exhausted after %d polygons", s.next)
	}
	poly := s.Polygons[s.next]
	s.next++

	if len(poly) < 3 {
		return nil, &models.InvalidPolygonError{Vertices: len(poly)}
	}
	return poly, nil
}

// scriptFile is the YAML shape of a polygon script: a list of polygons,
// each a list of [x, y] vertex pairs.
type scriptFile struct {
	Polygons [][][2]float64 `yaml:"polygons"`
}

// LoadScript reads a YAML polygon script for headless labeling runs.
func LoadScript(path string) (*Scripted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roi script: %w", err)
	}

	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roi script: %w", err)
	}

	s := &Scripted{}
	for _, raw := range file.Polygons {
		poly := make(models.Polygon, len(raw))
		for i, v := range raw {
			poly[i] = models.Vertex{X: v[0], Y: v[1]}
		}
		s.Polygons = append(s.Polygons, poly)
	}
	return s, nil
}
