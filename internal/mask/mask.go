// Package mask turns a badge source (text or a raster image) into a
// single-channel mask: white where the badge is, black elsewhere.
package mask

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"fancyfolders/internal/raster"
)

// MaxTextLength caps the number of characters rendered into a text badge.
const MaxTextLength = 25

// DefaultSteepness is the sigmoid steepness applied to image badges.
const DefaultSteepness = 0.18

// Truncate limits text to MaxTextLength characters.
func Truncate(text string) string {
	r := []rune(text)
	if len(r) > MaxTextLength {
		r = r[:MaxTextLength]
	}
	return string(r)
}

// FromText renders text in white on a black buffer sized exactly to the ink
// extent of the text. Lines are centred on each other and separated by
// spacing extra pixels. Glyphs with negative origin offsets are shifted into
// the buffer rather than clipped.
func FromText(text string, face font.Face, spacing int) *image.Gray {
	lines := strings.Split(Truncate(text), "\n")
	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil() + spacing

	type placedLine struct {
		text string
		dot  fixed.Point26_6
	}

	var (
		placed []placedLine
		extent fixed.Rectangle26_6
		inked  bool
	)
	for i, line := range lines {
		bounds, _ := font.BoundString(face, line)
		if bounds.Empty() {
			continue
		}
		// Centre each line horizontally on x=0.
		dot := fixed.Point26_6{
			X: -(bounds.Min.X + bounds.Max.X) / 2,
			Y: fixed.I(i * lineHeight),
		}
		shifted := fixed.Rectangle26_6{Min: bounds.Min.Add(dot), Max: bounds.Max.Add(dot)}
		if !inked {
			extent = shifted
			inked = true
		} else {
			extent = extent.Union(shifted)
		}
		placed = append(placed, placedLine{text: line, dot: dot})
	}

	if !inked {
		return image.NewGray(image.Rect(0, 0, 1, 1))
	}

	originX := extent.Min.X.Floor()
	originY := extent.Min.Y.Floor()
	w := extent.Max.X.Ceil() - originX
	h := extent.Max.Y.Ceil() - originY
	dst := image.NewGray(image.Rect(0, 0, w, h))

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}
	offset := fixed.P(-originX, -originY)
	for _, line := range placed {
		d.Dot = line.dot.Add(offset)
		d.DrawString(line.text)
	}
	return dst
}

// FromImage converts an arbitrary image into a badge mask. Transparent areas
// are flattened onto white so they read as "no badge"; the grayscale result
// is normalised and then inverted so a dark subject becomes white.
func FromImage(src image.Image, steepness float64) *image.Gray {
	nrgba := raster.ToNRGBA(src)
	gray := image.NewGray(nrgba.Bounds())
	for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+1 {
		p := nrgba.Pix[i : i+4 : i+4]
		y := luma(p[0], p[1], p[2])
		a := uint32(p[3])
		// Paste over white using the source alpha.
		gray.Pix[j] = uint8((y*a + 255*(255-a) + 127) / 255)
	}

	return Invert(Normalize(gray, steepness))
}

// Normalize stretches the intensity range of g to [0, 255] and pushes values
// toward the extremes with a logistic curve centred on 127. A flat image is
// returned unchanged.
func Normalize(g *image.Gray, steepness float64) *image.Gray {
	out := image.NewGray(g.Bounds())
	copy(out.Pix, g.Pix)

	lo, hi := extrema(g)
	if lo == hi {
		return out
	}

	var lut [256]uint8
	span := float64(hi - lo)
	for v := int(lo); v <= int(hi); v++ {
		n := int(float64(v-int(lo)) * 255 / span)
		s := 255 / (1 + math.Exp(-steepness*float64(n-127)))
		lut[v] = uint8(math.Round(s))
	}
	for i, v := range out.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// Invert returns 255-v for every pixel.
func Invert(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Bounds())
	for i, v := range g.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// IsBlack reports whether every pixel of g is zero.
func IsBlack(g *image.Gray) bool {
	for _, v := range g.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

func extrema(g *image.Gray) (uint8, uint8) {
	if len(g.Pix) == 0 {
		return 0, 0
	}
	lo, hi := uint8(255), uint8(0)
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.Pix[g.PixOffset(b.Min.X, y):g.PixOffset(b.Max.X, y)]
		for _, v := range row {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

// luma matches color.GrayModel for an opaque pixel (ITU-R 601-2 weights).
func luma(r, g, b uint8) uint32 {
	r16, g16, b16 := uint32(r)*0x101, uint32(g)*0x101, uint32(b)*0x101
	return (19595*r16 + 38470*g16 + 7471*b16 + 1<<15) >> 24
}
