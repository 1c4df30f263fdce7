package vision

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// Smoothing radius applied before gradient estimation. Small, because the
// input is usually an already-binary intensity mask.
const cannyBlurRadius = 1.0

// Default Canny thresholds.
const (
	CannyLowDefault  = 50
	CannyHighDefault = 150
)

// Canny runs the edge detector over src: Gaussian smoothing, 3x3 Sobel
// gradients with L1 magnitude, non-maximum suppression along the quantized
// gradient direction, then double threshold with hysteresis. Output pixels
// are 255 on edges, 0 elsewhere. Thresholds are applied as (min, max)
// regardless of argument order.
func Canny(src *image.Gray, low, high float64) *image.Gray {
	if low > high {
		low, high = high, low
	}
	smoothed := Grayscale(blur.Gaussian(src, cannyBlurRadius))
	w, h := smoothed.Bounds().Dx(), smoothed.Bounds().Dy()
	out := image.NewGray(src.Bounds())
	if w < 3 || h < 3 {
		return out
	}

	at := func(x, y int) float64 {
		return float64(smoothed.Pix[y*smoothed.Stride+x])
	}
	gx := make([]float64, w*h)
	gy := make([]float64, w*h)
	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			gx[i] = at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy[i] = at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			mag[i] = math.Abs(gx[i]) + math.Abs(gy[i])
		}
	}

	// Non-maximum suppression: keep a pixel only if it is at least as strong
	// as both neighbors along its gradient direction.
	thin := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if mag[i] == 0 {
				continue
			}
			var m1, m2 float64
			switch gradientSector(gx[i], gy[i]) {
			case 0:
				m1, m2 = mag[i-1], mag[i+1]
			case 1:
				m1, m2 = mag[i-w+1], mag[i+w-1]
			case 2:
				m1, m2 = mag[i-w], mag[i+w]
			default:
				m1, m2 = mag[i-w-1], mag[i+w+1]
			}
			if mag[i] >= m1 && mag[i] >= m2 {
				thin[i] = mag[i]
			}
		}
	}

	// Hysteresis: pixels above high seed edges; pixels above low join an
	// edge only when 8-connected to a seed.
	const strong, weak = 2, 1
	state := make([]uint8, w*h)
	stack := make([]int, 0, 256)
	for i, m := range thin {
		switch {
		case m >= high:
			state[i] = strong
			stack = append(stack, i)
		case m >= low:
			state[i] = weak
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if j := ny*w + nx; state[j] == weak {
					state[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if state[y*w+x] == strong {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// gradientSector quantizes a gradient direction into one of the four
// neighbor axes: 0 horizontal, 1 diagonal NE, 2 vertical, 3 diagonal NW.
func gradientSector(gx, gy float64) int {
	angle := math.Atan2(gy, gx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return 0
	case angle < 3*math.Pi/8:
		return 1
	case angle < 5*math.Pi/8:
		return 2
	default:
		return 3
	}
}
