// Package geometry provides the rectangle arithmetic used to place a badge
// inside a folder icon.
package geometry

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Box is a pixel rectangle given by its top-left (X1, Y1) and bottom-right
// (X2, Y2) corners.
type Box struct {
	X1, Y1, X2, Y2 int
}

func (b Box) Width() int  { return b.X2 - b.X1 }
func (b Box) Height() int { return b.Y2 - b.Y1 }

// Rect converts the box to an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X1, b.Y1, b.X2, b.Y2)
}

// FromFractions converts fractional (x1, y1, x2, y2) coordinates into a box
// on a square canvas of the given edge length. Coordinates are truncated.
func FromFractions(f [4]float64, size int) Box {
	s := float64(size)
	return Box{
		X1: int(s * f[0]),
		Y1: int(s * f[1]),
		X2: int(s * f[2]),
		Y2: int(s * f[3]),
	}
}

// Scaled scales b about its centre by scale along both axes and clips the
// result to [0, maxW] x [0, maxH]. The centre and the scaled offsets are
// truncated toward zero, so scale 1 is the identity for any in-range box.
func (b Box) Scaled(scale float64, maxW, maxH int) Box {
	cx := (b.X1 + b.X2) / 2
	cy := (b.Y1 + b.Y2) / 2

	topX := int(float64(b.X1-cx) * scale)
	topY := int(float64(b.Y1-cy) * scale)
	botX := int(float64(b.X2-cx) * scale)
	botY := int(float64(b.Y2-cy) * scale)

	return Box{
		X1: clampInt(cx+topX, 0, maxW),
		Y1: clampInt(cy+topY, 0, maxH),
		X2: clampInt(cx+botX, 0, maxW),
		Y2: clampInt(cy+botY, 0, maxH),
	}
}

// FitSize computes the size of src scaled by min(boxW/srcW, boxH/srcH) and
// the box that centres it inside box. The ratio is not capped at 1, so small
// sources grow to fill the box. Centering uses integer division, biasing odd
// remainders toward the top-left.
func FitSize(src image.Point, box Box) (image.Point, Box) {
	if src.X <= 0 || src.Y <= 0 {
		return image.Point{}, Box{X1: box.X1, Y1: box.Y1, X2: box.X1, Y2: box.Y1}
	}

	bw, bh := box.Width(), box.Height()
	ratio := min(float64(bw)/float64(src.X), float64(bh)/float64(src.Y))
	if ratio < 0 {
		ratio = 0
	}
	size := image.Pt(int(float64(src.X)*ratio), int(float64(src.Y)*ratio))

	x := box.X1 + (bw-size.X)/2
	y := box.Y1 + (bh-size.Y)/2
	return size, Box{X1: x, Y1: y, X2: x + size.X, Y2: y + size.Y}
}

// ResizeToFit resamples src into the fitted size computed by FitSize and
// returns it as a grayscale image together with its placement box.
func ResizeToFit(src image.Image, box Box) (*image.Gray, Box) {
	size, placement := FitSize(src.Bounds().Size(), box)
	dst := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	if size.X == 0 || size.Y == 0 {
		return dst, placement
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, placement
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
