// Package raster implements the per-pixel operators the icon compositor is
// built from: channel arithmetic blends, alpha compositing, flat-colour
// selection through a mask, row offsets and Gaussian blur.
//
// All images are non-premultiplied *image.NRGBA with a zero origin, and the
// operators follow the integer rounding of the classic chop/composite
// operators so results are reproducible byte for byte.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToNRGBA returns a copy of src as a zero-origin *image.NRGBA.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Resize scales src to a w×h NRGBA image with Catmull-Rom resampling.
func Resize(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ScaleAlpha multiplies every alpha value by factor, truncating and clamping
// to 255.
func ScaleAlpha(src *image.NRGBA, factor float64) *image.NRGBA {
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(min(int(float64(i)*factor), 255))
	}
	dst := clone(src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = lut[dst.Pix[i]]
	}
	return dst
}

// PutAlpha replaces the alpha channel of img with mask, in place.
func PutAlpha(img *image.NRGBA, mask *image.Gray) {
	for i, j := 3, 0; i < len(img.Pix) && j < len(mask.Pix); i, j = i+4, j+1 {
		img.Pix[i] = mask.Pix[j]
	}
}

// SetAlpha sets every alpha value of img to a, in place.
func SetAlpha(img *image.NRGBA, a uint8) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = a
	}
}

// Select builds an opaque image that is fg where mask is white and bg where
// it is black, blending linearly in between.
func Select(mask *image.Gray, fg, bg color.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(mask.Bounds())
	for j, m := range mask.Pix {
		i := j * 4
		dst.Pix[i+0] = mix(fg.R, bg.R, m)
		dst.Pix[i+1] = mix(fg.G, bg.G, m)
		dst.Pix[i+2] = mix(fg.B, bg.B, m)
		dst.Pix[i+3] = mix(fg.A, bg.A, m)
	}
	return dst
}

// Multiply returns a*b/255 for every channel, alpha included.
func Multiply(a, b *image.NRGBA) *image.NRGBA {
	dst := clone(a)
	for i := range dst.Pix {
		dst.Pix[i] = uint8(uint16(a.Pix[i]) * uint16(b.Pix[i]) / 255)
	}
	return dst
}

// Add returns min(a+b, 255) for every channel, alpha included.
func Add(a, b *image.NRGBA) *image.NRGBA {
	dst := clone(a)
	for i := range dst.Pix {
		dst.Pix[i] = uint8(min(uint16(a.Pix[i])+uint16(b.Pix[i]), 255))
	}
	return dst
}

// Over composites src on top of dst. Where src alpha is 0 the dst pixel is
// copied unchanged, colour included, as Pillow's alpha_composite does; the
// no-badge output depends on it, so do not zero the colour there.
func Over(dst, src *image.NRGBA) *image.NRGBA {
	out := clone(dst)
	for i := 0; i < len(out.Pix); i += 4 {
		sa := uint32(src.Pix[i+3])
		if sa == 0 {
			continue
		}
		da := uint32(dst.Pix[i+3])

		outA := sa*255 + da*(255-sa)
		w := float64(sa*255) / float64(outA)
		for c := 0; c < 3; c++ {
			v := float64(src.Pix[i+c])*w + float64(dst.Pix[i+c])*(1-w)
			out.Pix[i+c] = uint8(v + 0.5)
		}
		out.Pix[i+3] = uint8((outA + 127) / 255)
	}
	return out
}

// OffsetY rolls img down by dy rows; rows pushed off the bottom wrap around
// to the top.
func OffsetY(img *image.NRGBA, dy int) *image.NRGBA {
	h := img.Bounds().Dy()
	dst := image.NewNRGBA(img.Bounds())
	if h == 0 {
		return dst
	}
	dy = ((dy % h) + h) % h
	for y := 0; y < h; y++ {
		sy := (y - dy + h) % h
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], img.Pix[sy*img.Stride:(sy+1)*img.Stride])
	}
	return dst
}

func clone(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// mix returns (a*m + b*(255-m))/255, rounded.
func mix(a, b, m uint8) uint8 {
	return uint8((uint32(a)*uint32(m) + uint32(b)*(255-uint32(m)) + 127) / 255)
}
