// Package vision implements the line-extraction stages the follower runs on
// every camera frame: luminance grayscale, intensity masking, Canny edge
// detection, and a progressive probabilistic Hough transform that turns edge
// pixels into line segments.
package vision

import (
	"image"
	"image/draw"
)

// Grayscale converts img to 8-bit luminance. Gray input is returned as is.
func Grayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// InRange returns a binary mask that is 255 where the intensity lies in
// [lo, hi] and 0 elsewhere. A reversed range selects nothing.
func InRange(gray *image.Gray, lo, hi uint8) *image.Gray {
	mask := image.NewGray(gray.Bounds())
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, v := range src {
			if v >= lo && v <= hi {
				dst[x] = 255
			}
		}
	}
	return mask
}

// CountNonzero reports how many mask pixels are set.
func CountNonzero(mask *image.Gray) int {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	n := 0
	for y := 0; y < h; y++ {
		for _, v := range mask.Pix[y*mask.Stride : y*mask.Stride+w] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
