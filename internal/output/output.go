// Package output writes generated icons to disk.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/draw"
)

// ICOSize is the edge length of the single image stored in .ico files.
const ICOSize = 256

// DefaultStem is the base name used when the caller does not name the output.
const DefaultStem = "untitled folder"

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeICO downscales img to ICOSize and writes it as a single-image ICO.
func EncodeICO(w io.Writer, img image.Image) error {
	return ico.Encode(w, scaleSquare(img, ICOSize))
}

// WritePNG atomically writes img as a PNG file and returns its size.
func WritePNG(path string, img image.Image) (int64, error) {
	return writeAtomic(path, func(w io.Writer) error { return EncodePNG(w, img) })
}

// WriteICO atomically writes img as an ICO file and returns its size.
func WriteICO(path string, img image.Image) (int64, error) {
	return writeAtomic(path, func(w io.Writer) error { return EncodeICO(w, img) })
}

// Crop returns the fractional (x1, y1, x2, y2) region of img as a new image.
func Crop(img image.Image, f [4]float64) *image.NRGBA {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r := image.Rect(
		b.Min.X+int(w*f[0]), b.Min.Y+int(h*f[1]),
		b.Min.X+int(w*f[2]), b.Min.Y+int(h*f[3]),
	).Intersect(b)

	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// UniquePath returns dir/stem+ext, or dir/"stem N"+ext with the smallest
// N >= 2 that does not exist yet.
func UniquePath(dir, stem, ext string) (string, error) {
	for i := 1; ; i++ {
		name := stem
		if i > 1 {
			name = fmt.Sprintf("%s %d", stem, i)
		}
		path := filepath.Join(dir, name+ext)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func scaleSquare(src image.Image, size int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}

	scale := min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	nw, nh := int(float64(b.Dx())*scale+0.5), int(float64(b.Dy())*scale+0.5)
	offX, offY := (size-nw)/2, (size-nh)/2
	draw.CatmullRom.Scale(dst, image.Rect(offX, offY, offX+nw, offY+nh), src, b, draw.Over, nil)
	return dst
}

func writeAtomic(path string, encode func(io.Writer) error) (int64, error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmpFile, err := os.CreateTemp(dir, "fancyfolders-*.tmp")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := replaceFile(tmpFile.Name(), path); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
