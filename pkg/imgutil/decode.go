package imgutil

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when an input cannot be decoded as any of
// the registered raster formats.
var ErrUnsupportedFormat = errors.New("imgutil: unsupported format")

// Decode decodes rs from its start.
func Decode(rs io.ReadSeeker) (image.Image, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return img, nil
}

// Load opens, decodes and uprights the image at path. EXIF orientation is
// honoured for the formats that carry it; a broken EXIF block is ignored.
func Load(path string) (image.Image, Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, KindUnknown, err
	}
	defer f.Close()

	kind, err := SniffReader(f)
	if err != nil {
		return nil, KindUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if kind == KindUnknown {
		return nil, kind, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	img, err := Decode(f)
	if err != nil {
		return nil, kind, err
	}

	if kind.HasExif() {
		if o, err := Orientation(f); err == nil {
			img = Orient(img, o)
		}
	}
	return img, kind, nil
}
