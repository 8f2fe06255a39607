// Package colour holds the small RGB/HSV value types used by the icon
// pipeline and the arithmetic that derives badge shading colours.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// HSV is a colour in hue/saturation/value space. Every channel is in [0, 1].
type HSV struct {
	H, S, V float64
}

// NRGBA returns the colour as an opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

// HSV is shorthand for ToHSV(c).
func (c RGB) HSV() HSV {
	return ToHSV(c)
}

// ToHSV scales each channel into [0, 1] and converts to HSV.
func ToHSV(c RGB) HSV {
	h, s, v := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	return HSV{H: wrapUnit(h / 360), S: s, V: v}
}

// FromHSV converts back to 8-bit RGB. Channels are truncated, not rounded,
// so a ToHSV/FromHSV round trip may lose one unit per channel.
func FromHSV(c HSV) RGB {
	col := colorful.Hsv(wrapUnit(c.H)*360, Clamp(c.S, 0, 1), Clamp(c.V, 0, 1))
	return RGB{
		R: truncate255(col.R),
		G: truncate255(col.G),
		B: truncate255(col.B),
	}
}

// Divided returns the colour that, multiplied against base, yields target:
// 255*target/base per channel, clamped to [0, 255]. A zero base channel
// clamps to 255.
func Divided(base, target RGB) RGB {
	return RGB{
		R: dividedChannel(base.R, target.R),
		G: dividedChannel(base.G, target.G),
		B: dividedChannel(base.B, target.B),
	}
}

func dividedChannel(base, target uint8) uint8 {
	if base == 0 {
		return 255
	}
	v := int(255 * float64(target) / float64(base))
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapUnit maps h into [0, 1) the way a non-negative modulo would.
func wrapUnit(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}

func truncate255(v float64) uint8 {
	return uint8(Clamp(v, 0, 1) * 255)
}
