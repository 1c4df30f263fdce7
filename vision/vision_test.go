package vision

import (
	"image"
	"image/color"
	"testing"
)

func TestGrayscale_KnownColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{A: 255})

	gray := Grayscale(img)
	if got := gray.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("white -> %d, want 255", got)
	}
	if got := gray.GrayAt(1, 0).Y; got != 0 {
		t.Errorf("black -> %d, want 0", got)
	}
}

func TestGrayscale_GrayInput_ReturnedAsIs(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	if Grayscale(gray) != gray {
		t.Error("gray input should be returned without copying")
	}
}

func TestInRange_SelectsBand(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		gray.SetGray(x, 0, color.Gray{Y: uint8(x)})
	}

	mask := InRange(gray, 100, 199)
	if got := CountNonzero(mask); got != 100 {
		t.Errorf("pixels in [100,199] = %d, want 100", got)
	}
	if mask.GrayAt(99, 0).Y != 0 || mask.GrayAt(100, 0).Y != 255 {
		t.Error("lower bound must be inclusive")
	}
	if mask.GrayAt(199, 0).Y != 255 || mask.GrayAt(200, 0).Y != 0 {
		t.Error("upper bound must be inclusive")
	}
}

func TestInRange_ReversedRange_SelectsNothing(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	if got := CountNonzero(InRange(gray, 200, 100)); got != 0 {
		t.Errorf("reversed range selected %d pixels, want 0", got)
	}
}

func TestInRange_FullRange_SelectsEverything(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	if got := CountNonzero(InRange(gray, 0, 255)); got != 64 {
		t.Errorf("full range selected %d pixels, want 64", got)
	}
}

// whiteRect returns a black image with a filled white rectangle.
func whiteRect(w, h int, r image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestCanny_FlatImage_NoEdges(t *testing.T) {
	flat := image.NewGray(image.Rect(0, 0, 32, 32))
	if got := CountNonzero(Canny(flat, 50, 150)); got != 0 {
		t.Errorf("flat image produced %d edge pixels, want 0", got)
	}
}

func TestCanny_Rectangle_EdgesOnBorderOnly(t *testing.T) {
	rect := image.Rect(10, 10, 50, 40)
	img := whiteRect(64, 64, rect)

	edges := Canny(img, 50, 150)
	if got := CountNonzero(edges); got < 60 {
		t.Fatalf("edge pixels = %d, want at least the rectangle perimeter's worth", got)
	}

	// Flat regions well away from the border stay clean.
	for _, p := range []image.Point{{30, 25}, {2, 2}, {60, 60}, {30, 60}} {
		if edges.GrayAt(p.X, p.Y).Y != 0 {
			t.Errorf("edge reported at flat pixel %v", p)
		}
	}

	// Each side of the rectangle shows up near its midpoint.
	for _, p := range []image.Point{{30, 10}, {30, 40}, {10, 25}, {50, 25}} {
		if !anySetNear(edges, p, 3) {
			t.Errorf("no edge within 3px of border point %v", p)
		}
	}
}

func TestCanny_ThresholdOrderIrrelevant(t *testing.T) {
	img := whiteRect(64, 64, image.Rect(10, 10, 50, 40))
	a := Canny(img, 50, 150)
	b := Canny(img, 150, 50)
	if CountNonzero(a) != CountNonzero(b) {
		t.Error("swapped thresholds changed the result")
	}
}

func TestCanny_TinyImage_NoPanic(t *testing.T) {
	tiny := image.NewGray(image.Rect(0, 0, 2, 2))
	if got := CountNonzero(Canny(tiny, 50, 150)); got != 0 {
		t.Errorf("2x2 image produced %d edges, want 0", got)
	}
}

func anySetNear(img *image.Gray, p image.Point, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			q := image.Pt(p.X+dx, p.Y+dy)
			if q.In(img.Bounds()) && img.GrayAt(q.X, q.Y).Y != 0 {
				return true
			}
		}
	}
	return false
}
