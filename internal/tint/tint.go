// Package tint recolours an image by shifting a reference colour onto a
// target colour in HSV space, through a small 3D lookup table.
package tint

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"fancyfolders/internal/colour"
	"fancyfolders/internal/raster"
)

// DefaultSize is the per-axis resolution of the lookup table. Folder art is
// made of smooth gradients, so four samples per channel are enough.
const DefaultSize = 4

// Shift is the HSV transform that maps the base colour onto the target.
type Shift struct {
	HueOffset float64
	SatRatio  float64
	ValRatio  float64
}

// NewShift computes the hue offset and saturation/value ratios between base
// and target. A zero saturation or value in base yields a ratio of 1.
func NewShift(base, target colour.RGB) Shift {
	from := colour.ToHSV(base)
	to := colour.ToHSV(target)

	s := Shift{
		HueOffset: wrap(to.H - from.H),
		SatRatio:  1,
		ValRatio:  1,
	}
	if from.S != 0 {
		s.SatRatio = to.S / from.S
	}
	if from.V != 0 {
		s.ValRatio = to.V / from.V
	}
	return s
}

// Apply shifts a single colour given as floats in [0, 1].
func (s Shift) Apply(r, g, b float64) (float64, float64, float64) {
	h, sat, val := colorful.Color{R: r, G: g, B: b}.Hsv()
	h = wrap(h/360 + s.HueOffset)
	sat = colour.Clamp(sat*s.SatRatio, 0, 1)
	val = colour.Clamp(val*s.ValRatio, 0, 1)
	out := colorful.Hsv(h*360, sat, val)
	return out.R, out.G, out.B
}

// Table is a size×size×size colour lookup table. Entries are stored with
// red varying fastest and blue slowest.
type Table struct {
	size  int
	table []float64
}

// Build samples the shift from base to target on a size³ grid.
func Build(base, target colour.RGB, size int) *Table {
	if size < 2 {
		size = 2
	}
	return Generate(size, NewShift(base, target).Apply)
}

// Generate fills a table by evaluating fn at every grid point.
func Generate(size int, fn func(r, g, b float64) (float64, float64, float64)) *Table {
	t := &Table{size: size, table: make([]float64, 0, size*size*size*3)}
	step := float64(size - 1)
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				or, og, ob := fn(float64(r)/step, float64(g)/step, float64(b)/step)
				t.table = append(t.table, or, og, ob)
			}
		}
	}
	return t
}

func (t *Table) Size() int { return t.size }

// Lookup trilinearly interpolates the table at an 8-bit RGB triple.
func (t *Table) Lookup(r, g, b uint8) (uint8, uint8, uint8) {
	scale := float64(t.size-1) / 255
	fr, fg, fb := float64(r)*scale, float64(g)*scale, float64(b)*scale
	r0, g0, b0 := cell(fr, t.size), cell(fg, t.size), cell(fb, t.size)
	dr, dg, db := fr-float64(r0), fg-float64(g0), fb-float64(b0)

	var out [3]float64
	for c := 0; c < 3; c++ {
		c00 := lerp(t.at(r0, g0, b0, c), t.at(r0+1, g0, b0, c), dr)
		c10 := lerp(t.at(r0, g0+1, b0, c), t.at(r0+1, g0+1, b0, c), dr)
		c01 := lerp(t.at(r0, g0, b0+1, c), t.at(r0+1, g0, b0+1, c), dr)
		c11 := lerp(t.at(r0, g0+1, b0+1, c), t.at(r0+1, g0+1, b0+1, c), dr)
		out[c] = lerp(lerp(c00, c10, dg), lerp(c01, c11, dg), db)
	}
	return to8(out[0]), to8(out[1]), to8(out[2])
}

// Apply runs every pixel's RGB channels through the table. Alpha is kept.
func (t *Table) Apply(src image.Image) *image.NRGBA {
	dst := raster.ToNRGBA(src)
	for i := 0; i < len(dst.Pix); i += 4 {
		p := dst.Pix[i : i+4 : i+4]
		p[0], p[1], p[2] = t.Lookup(p[0], p[1], p[2])
	}
	return dst
}

func (t *Table) at(r, g, b, c int) float64 {
	return t.table[((b*t.size+g)*t.size+r)*3+c]
}

// cell returns the lower grid index for v, leaving room for index+1.
func cell(v float64, size int) int {
	i := int(v)
	if i >= size-1 {
		i = size - 2
	}
	return i
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func to8(v float64) uint8 {
	return uint8(math.Round(colour.Clamp(v, 0, 1) * 255))
}

func wrap(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}
