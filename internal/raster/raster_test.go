package raster

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestScaleAlphaClamps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 10})
	img.SetNRGBA(1, 0, color.NRGBA{R: 2, A: 200})
	img.SetNRGBA(2, 0, color.NRGBA{R: 3, A: 0})

	out := ScaleAlpha(img, 1.9)
	if out.Pix[3] != 19 || out.Pix[7] != 255 || out.Pix[11] != 0 {
		t.Fatalf("unexpected alpha: %d %d %d", out.Pix[3], out.Pix[7], out.Pix[11])
	}
	if out.Pix[0] != 1 || out.Pix[4] != 2 {
		t.Fatal("colour channels must be untouched")
	}
	if img.Pix[3] != 10 {
		t.Fatal("input must not be modified")
	}
}

func TestSelect(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 3, 1))
	m.Pix[0], m.Pix[1], m.Pix[2] = 255, 0, 128

	fg := color.NRGBA{R: 200, G: 100, B: 0, A: 255}
	bg := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	out := Select(m, fg, bg)

	if got := out.NRGBAAt(0, 0); got != fg {
		t.Fatalf("white mask should select fg, got %v", got)
	}
	if got := out.NRGBAAt(1, 0); got != bg {
		t.Fatalf("black mask should select bg, got %v", got)
	}
	if got := out.NRGBAAt(2, 0); got.R != 100 || got.B != 100 || got.G != 100 {
		t.Fatalf("half mask should blend, got %v", got)
	}
}

func TestMultiplyAndAdd(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	a.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 255, B: 10, A: 255})
	b.SetNRGBA(0, 0, color.NRGBA{R: 128, G: 255, B: 250, A: 100})

	m := Multiply(a, b).NRGBAAt(0, 0)
	if m != (color.NRGBA{R: 100, G: 255, B: 9, A: 100}) {
		t.Fatalf("multiply: %v", m)
	}

	s := Add(a, b).NRGBAAt(0, 0)
	if s != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("add: %v", s)
	}
}

func TestOver(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))

	dst.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 9, B: 9, A: 0})
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 0})

	dst.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	dst.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{R: 255, A: 128})

	out := Over(dst, src)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 9, G: 9, B: 9, A: 0}) {
		t.Fatalf("transparent src must keep dst, got %v", got)
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("opaque src must replace dst, got %v", got)
	}
	if got := out.NRGBAAt(2, 0); got.A != 255 || got.R != 128 || got.B != 127 {
		t.Fatalf("half src should blend, got %v", got)
	}
}

func TestOffsetYWraps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 4))
	for y := 0; y < 4; y++ {
		img.SetNRGBA(0, y, color.NRGBA{R: uint8(y), A: 255})
	}

	out := OffsetY(img, 1)
	want := []uint8{3, 0, 1, 2}
	for y, w := range want {
		if got := out.NRGBAAt(0, y).R; got != w {
			t.Fatalf("row %d: got %d want %d", y, got, w)
		}
	}

	if OffsetY(img, 4).NRGBAAt(0, 0).R != 0 {
		t.Fatal("full-height offset should be the identity")
	}
}

func TestGaussianBlurKeepsFlatImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 9))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 19, 80, 200, 255
	}
	out := GaussianBlur(img, 3)
	for i := range out.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatalf("flat image changed at %d: %d -> %d", i, img.Pix[i], out.Pix[i])
		}
	}
}

func TestGaussianBlurSpreads(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 21, 21))
	img.SetNRGBA(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := GaussianBlur(img, 2)
	centre := out.NRGBAAt(10, 10).R
	near := out.NRGBAAt(11, 10).R
	far := out.NRGBAAt(0, 0).R
	if !(centre > near && near > far) {
		t.Fatalf("blur should fall off from the centre: %d %d %d", centre, near, far)
	}
	if centre == 255 {
		t.Fatal("centre should have spread")
	}
}

func TestGaussianBlurReachOnOpaqueInsert(t *testing.T) {
	// A #131313 square on opaque black, the shape of the highlight insert.
	img := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.NRGBA{A: 255}
			if x >= 20 && x < 40 && y >= 20 && y < 40 {
				c = color.NRGBA{R: 0x13, G: 0x13, B: 0x13, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	for _, sigma := range []float64{3, 6} {
		reach := int(math.Ceil(3 * sigma))
		out := GaussianBlur(img, sigma)
		if out.Bounds() != img.Bounds() {
			t.Fatalf("sigma %v: bounds %v", sigma, out.Bounds())
		}
		for i := 3; i < len(out.Pix); i += 4 {
			if out.Pix[i] != 255 {
				t.Fatalf("sigma %v: alpha changed at %d: %d", sigma, i, out.Pix[i])
			}
		}
		if got := out.NRGBAAt(20-reach-1, 30).R; got != 0 {
			t.Fatalf("sigma %v: pixel outside the kernel reach is %d", sigma, got)
		}
		if got := out.NRGBAAt(19, 30).R; got == 0 {
			t.Fatalf("sigma %v: edge did not spread", sigma)
		}
		if got := out.NRGBAAt(30, 30).R; sigma == 3 && got != 0x13 {
			t.Fatalf("sigma %v: interior changed to %d", sigma, got)
		}
	}
}

func TestGaussianBlurZeroSigmaCopies(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 9, A: 255})
	out := GaussianBlur(img, 0)
	if out == img {
		t.Fatal("expected a copy")
	}
	if out.NRGBAAt(1, 1) != img.NRGBAAt(1, 1) {
		t.Fatalf("copy differs: %v", out.NRGBAAt(1, 1))
	}
}

func TestToNRGBACopiesSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 2, color.NRGBA{R: 7, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	out := ToNRGBA(sub)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("expected zero origin, got %v", out.Bounds())
	}
	if out.NRGBAAt(0, 0).R != 7 {
		t.Fatalf("pixel not copied: %v", out.NRGBAAt(0, 0))
	}
}
