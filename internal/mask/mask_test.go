package mask

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func TestFromImagePolarity(t *testing.T) {
	white := solid(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if m := FromImage(white, DefaultSteepness); !allEqual(m, 0) {
		t.Fatalf("white source should give an all-black mask")
	}

	black := solid(color.NRGBA{A: 255})
	if m := FromImage(black, DefaultSteepness); !allEqual(m, 255) {
		t.Fatalf("black source should give an all-white mask")
	}

	clear := solid(color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	if m := FromImage(clear, DefaultSteepness); !IsBlack(m) {
		t.Fatalf("transparent source should give an all-black mask")
	}
}

func TestFromImageDarkSubjectBecomesWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.SetNRGBA(0, 0, color.NRGBA{A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(2, 0, color.NRGBA{A: 0})
	src.SetNRGBA(3, 0, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	m := FromImage(src, DefaultSteepness)
	if m.Bounds().Dx() != 4 || m.Bounds().Dy() != 1 {
		t.Fatalf("mask should keep source size, got %v", m.Bounds())
	}
	if m.Pix[0] != 255 {
		t.Fatalf("black subject should be white in mask, got %d", m.Pix[0])
	}
	if m.Pix[1] != 0 || m.Pix[2] != 0 {
		t.Fatalf("white and transparent pixels should be black, got %v", m.Pix[:3])
	}
	if m.Pix[3] < 100 || m.Pix[3] > 155 {
		t.Fatalf("mid-gray should stay near the middle, got %d", m.Pix[3])
	}
}

func TestNormalizeFlatImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range g.Pix {
		g.Pix[i] = 77
	}

	out := Normalize(g, DefaultSteepness)
	if !allEqual(out, 77) {
		t.Fatalf("flat image should be returned unchanged, got %v", out.Pix)
	}
	if &out.Pix[0] == &g.Pix[0] {
		t.Fatalf("normalize should not alias its input")
	}
}

func TestNormalizeStretches(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 1))
	g.Pix[0], g.Pix[1], g.Pix[2] = 100, 110, 120

	out := Normalize(g, DefaultSteepness)
	if out.Pix[0] != 0 || out.Pix[2] != 255 {
		t.Fatalf("extremes should reach 0 and 255, got %v", out.Pix)
	}
	if out.Pix[1] < 120 || out.Pix[1] > 135 {
		t.Fatalf("midpoint should stay near 127, got %d", out.Pix[1])
	}
}

func TestInvert(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0], g.Pix[1] = 0, 200
	out := Invert(g)
	if out.Pix[0] != 255 || out.Pix[1] != 55 {
		t.Fatalf("unexpected inversion: %v", out.Pix)
	}
}

func TestFromTextTightBuffer(t *testing.T) {
	face := testFace(t, 64)

	m := FromText("A", face, 16)
	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx() > 64 || b.Dy() > 64 {
		t.Fatalf("unexpected buffer for a single glyph: %v", b)
	}
	if IsBlack(m) {
		t.Fatal("text mask should contain white pixels")
	}
	top := rowHasInk(m, 0) || rowHasInk(m, 1)
	bottom := rowHasInk(m, b.Dy()-1) || rowHasInk(m, b.Dy()-2)
	if !top || !bottom {
		t.Fatal("buffer should be tight: first and last rows carry ink")
	}
}

func TestFromTextDescenders(t *testing.T) {
	face := testFace(t, 64)
	upper := FromText("A", face, 16)
	lower := FromText("Ag", face, 16)
	if lower.Bounds().Dy() <= upper.Bounds().Dy()+5 {
		t.Fatalf("descender should extend the buffer: %v vs %v", lower.Bounds(), upper.Bounds())
	}
	last := lower.Bounds().Dy() - 1
	if !rowHasInk(lower, last) && !rowHasInk(lower, last-1) {
		t.Fatal("descenders must not be clipped")
	}
}

func TestFromTextMultiline(t *testing.T) {
	face := testFace(t, 32)
	single := FromText("AB", face, 4)
	double := FromText("AB\nAB", face, 4)
	if double.Bounds().Dy() <= single.Bounds().Dy()*3/2 {
		t.Fatalf("two lines should be taller than one: %v vs %v", double.Bounds(), single.Bounds())
	}
}

func TestFromTextEmpty(t *testing.T) {
	m := FromText("   ", testFace(t, 32), 4)
	if m.Bounds().Dx() != 1 || m.Bounds().Dy() != 1 || !IsBlack(m) {
		t.Fatalf("blank text should give a 1x1 black mask, got %v", m.Bounds())
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 40)
	if got := []rune(Truncate(long)); len(got) != MaxTextLength {
		t.Fatalf("expected %d runes, got %d", MaxTextLength, len(got))
	}
	if Truncate("short") != "short" {
		t.Fatal("short text should be untouched")
	}
}

func testFace(t *testing.T, px float64) font.Face {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("parse font: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		t.Fatalf("new face: %v", err)
	}
	t.Cleanup(func() { _ = face.Close() })
	return face
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func allEqual(g *image.Gray, v uint8) bool {
	for _, p := range g.Pix {
		if p != v {
			return false
		}
	}
	return true
}

func rowHasInk(g *image.Gray, y int) bool {
	b := g.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		if g.GrayAt(x, y).Y > 0 {
			return true
		}
	}
	return false
}
