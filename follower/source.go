package follower

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Source produces frames for the pipeline. Next returns io.EOF once the
// source is exhausted.
type Source interface {
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

// DirSource plays back a directory of PNG/JPEG frames in name order,
// optionally downscaling to a working width.
type DirSource struct {
	paths    []string
	next     int
	maxWidth int
}

// NewDirSource scans dir for image frames. maxWidth > 0 resizes wider
// frames down, preserving aspect ratio.
func NewDirSource(dir string, maxWidth int) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	sort.Strings(paths)
	return &DirSource{paths: paths, maxWidth: maxWidth}, nil
}

// Next decodes the next frame.
func (s *DirSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding frame %s: %w", path, err)
	}
	if s.maxWidth > 0 && img.Bounds().Dx() > s.maxWidth {
		h := img.Bounds().Dy() * s.maxWidth / img.Bounds().Dx()
		img = transform.Resize(img, s.maxWidth, h, transform.Linear)
	}
	return img, nil
}

// Close implements Source. Nothing to release.
func (s *DirSource) Close() error { return nil }

// Synthetic frame palette.
const (
	syntheticFloor = 200 // light floor
	syntheticLine  = 20  // dark painted line
	syntheticBand  = 3   // half-width of the line in pixels
)

// SyntheticSource draws a dark vertical line wandering over a light floor,
// standing in for a camera. The walk is seeded, so runs are reproducible.
type SyntheticSource struct {
	width  int
	height int
	frames int
	n      int
	rng    *rand.Rand
	center float64
}

// NewSyntheticSource produces frames x-by-y pixels, ending after count
// frames.
func NewSyntheticSource(width, height, count int, seed int64) *SyntheticSource {
	return &SyntheticSource{
		width:  width,
		height: height,
		frames: count,
		rng:    rand.New(rand.NewSource(seed)),
		center: float64(width) / 2,
	}
}

// Next renders the next frame: the line drifts by a bounded random step.
func (s *SyntheticSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.n >= s.frames {
		return nil, io.EOF
	}
	s.n++

	img := image.NewGray(image.Rect(0, 0, s.width, s.height))
	for i := range img.Pix {
		img.Pix[i] = syntheticFloor
	}
	cx := int(s.center)
	for y := 0; y < s.height; y++ {
		for x := cx - syntheticBand; x <= cx+syntheticBand; x++ {
			if x >= 0 && x < s.width {
				img.SetGray(x, y, color.Gray{Y: syntheticLine})
			}
		}
	}

	step := s.rng.Float64()*4 - 2
	s.center += step
	margin := float64(syntheticBand + 1)
	if s.center < margin {
		s.center = margin
	}
	if s.center > float64(s.width)-margin {
		s.center = float64(s.width) - margin
	}
	return img, nil
}

// Close implements Source.
func (s *SyntheticSource) Close() error { return nil }
