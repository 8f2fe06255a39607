package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// GaussianBlur blurs img with a Gaussian of standard deviation sigma. The
// kernel reaches ceil(3*sigma) pixels on each side.
func GaussianBlur(img *image.NRGBA, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return clone(img)
	}
	return imaging.Blur(img, sigma)
}
