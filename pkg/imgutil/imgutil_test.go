package imgutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, KindPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}, KindJPEG},
		{"tiff le", []byte{'I', 'I', 0x2a, 0, 8, 0, 0, 0}, KindTIFF},
		{"tiff be", []byte{'M', 'M', 0, 0x2a, 0, 0, 0, 8}, KindTIFF},
		{"gif", []byte("GIF89a\x01\x00"), KindGIF},
		{"bmp", []byte("BM\x00\x00\x00\x00\x00\x00"), KindBMP},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBP"), KindWebP},
		{"riff but not webp", []byte("RIFF\x10\x00\x00\x00WAVE"), KindUnknown},
		{"text", []byte("hello world!"), KindUnknown},
	}
	for _, tc := range cases {
		got, err := DetectHeader(tc.header)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}

	if _, err := DetectHeader([]byte{1, 2}); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestSniffShortFile(t *testing.T) {
	kind, err := SniffReader(bytes.NewReader([]byte("BM\x00\x00\x00\x00\x00\x00\x00")))
	if err != nil || kind != KindBMP {
		t.Fatalf("got %v (%v)", kind, err)
	}
}

func TestDecodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadRejectsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("some plain text here"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestOrient(t *testing.T) {
	// 3x2 source, pixel value = 10*y + x in the red channel:
	//   0  1  2
	//  10 11 12
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(10*y + x), A: 255})
		}
	}

	cases := []struct {
		o    int
		want [][]uint8
	}{
		{OrientFlipH, [][]uint8{{2, 1, 0}, {12, 11, 10}}},
		{OrientRotate180, [][]uint8{{12, 11, 10}, {2, 1, 0}}},
		{OrientFlipV, [][]uint8{{10, 11, 12}, {0, 1, 2}}},
		{OrientTranspose, [][]uint8{{0, 10}, {1, 11}, {2, 12}}},
		{OrientRotate90, [][]uint8{{10, 0}, {11, 1}, {12, 2}}},
		{OrientTransverse, [][]uint8{{12, 2}, {11, 1}, {10, 0}}},
		{OrientRotate270, [][]uint8{{2, 12}, {1, 11}, {0, 10}}},
	}
	for _, tc := range cases {
		got := Orient(src, tc.o)
		b := got.Bounds()
		if b.Dy() != len(tc.want) || b.Dx() != len(tc.want[0]) {
			t.Fatalf("orientation %d: unexpected bounds %v", tc.o, b)
		}
		for y, row := range tc.want {
			for x, w := range row {
				r, _, _, _ := got.At(x, y).RGBA()
				if uint8(r>>8) != w {
					t.Fatalf("orientation %d: pixel (%d,%d) = %d want %d", tc.o, x, y, r>>8, w)
				}
			}
		}
	}

	if Orient(src, OrientNormal) != image.Image(src) {
		t.Fatal("normal orientation should return the input")
	}
}

func TestOrientSubImageStartsAtOrigin(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	full.SetNRGBA(2, 1, color.NRGBA{R: 7, A: 255})
	sub := full.SubImage(image.Rect(2, 1, 4, 4))

	got := Orient(sub, OrientRotate90)
	if got.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}
	// The top-left source pixel ends up top-right after a clockwise turn.
	if r, _, _, _ := got.At(2, 0).RGBA(); r>>8 != 7 {
		t.Fatalf("pixel (2,0) = %d want 7", r>>8)
	}
}

func TestOrientationFromExif(t *testing.T) {
	data := buildJPEGWithOrientation(OrientRotate90)
	o, err := Orientation(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("orientation: %v", err)
	}
	if o != OrientRotate90 {
		t.Fatalf("got orientation %d", o)
	}
}

func TestOrientationWithoutExif(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	o, err := Orientation(bytes.NewReader(buf.Bytes()))
	if err != nil || o != OrientNormal {
		t.Fatalf("got %d (%v)", o, err)
	}
}

// buildJPEGWithOrientation wraps a one-entry IFD0 in an APP1 segment.
func buildJPEGWithOrientation(o uint16) []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, o)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))

	exif := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(exif)+2))
	buf.Write(exif)
	buf.Write([]byte{0xff, 0xd9})
	return buf.Bytes()
}
