package imgutil

import (
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// Orientation values as stored in the EXIF Orientation tag.
const (
	OrientNormal     = 1
	OrientFlipH      = 2
	OrientRotate180  = 3
	OrientFlipV      = 4
	OrientTranspose  = 5
	OrientRotate90   = 6
	OrientTransverse = 7
	OrientRotate270  = 8
)

const orientationTagID = 0x0112

// Orientation returns the EXIF orientation of rs, or OrientNormal when the
// stream has no EXIF data or no Orientation tag.
func Orientation(rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return OrientNormal, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if errorsIsNoExif(err) {
			return OrientNormal, nil
		}
		return OrientNormal, err
	}

	for _, tag := range tags {
		if tag.TagId != orientationTagID && tag.TagName != "Orientation" {
			continue
		}
		if tag.IfdPath != "" && tag.IfdPath != "IFD" {
			continue
		}
		o, err := orientationValue(tag)
		if err != nil {
			return OrientNormal, err
		}
		if o < OrientNormal || o > OrientRotate270 {
			return OrientNormal, nil
		}
		return o, nil
	}
	return OrientNormal, nil
}

func orientationValue(tag exif.ExifTag) (int, error) {
	switch v := tag.Value.(type) {
	case []uint16:
		if len(v) > 0 {
			return int(v[0]), nil
		}
	case []uint32:
		if len(v) > 0 {
			return int(v[0]), nil
		}
	}
	o, err := strconv.Atoi(strings.TrimSpace(tag.FormattedFirst))
	if err != nil {
		return OrientNormal, fmt.Errorf("orientation tag: %w", err)
	}
	return o, nil
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

// Orient returns img transformed so that it displays upright for the given
// EXIF orientation. OrientNormal and unknown values return img unchanged.
func Orient(img image.Image, o int) image.Image {
	switch o {
	case OrientFlipH:
		return imaging.FlipH(img)
	case OrientRotate180:
		return imaging.Rotate180(img)
	case OrientFlipV:
		return imaging.FlipV(img)
	case OrientTranspose:
		return imaging.Transpose(img)
	case OrientRotate90:
		// imaging turns counter-clockwise, so 270 here is a quarter turn clockwise.
		return imaging.Rotate270(img)
	case OrientTransverse:
		return imaging.Transverse(img)
	case OrientRotate270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
