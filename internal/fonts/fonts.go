// Package fonts names the SF Pro weights a text badge can use and loads
// font faces sized in pixels.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

type Weight int

const (
	Ultralight Weight = iota + 1
	Thin
	Regular
	Medium
	Semibold
	Bold
	Heavy
	Black
)

// DefaultWeight is used when a caller does not pick one.
const DefaultWeight = Heavy

var weightNames = [...]string{
	Ultralight: "Ultralight",
	Thin:       "Thin",
	Regular:    "Regular",
	Medium:     "Medium",
	Semibold:   "Semibold",
	Bold:       "Bold",
	Heavy:      "Heavy",
	Black:      "Black",
}

// Backups are tried, in order, when the requested weight is not installed.
var Backups = []string{"SFNS.ttf", "System San Francisco Text Medium.ttf"}

// Weights lists every weight from lightest to heaviest.
func Weights() []Weight {
	return []Weight{Ultralight, Thin, Regular, Medium, Semibold, Bold, Heavy, Black}
}

func (w Weight) Valid() bool {
	return w >= Ultralight && w <= Black
}

func (w Weight) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weight(%d)", int(w))
	}
	return weightNames[w]
}

// Filename is the font file that carries this weight.
func (w Weight) Filename() string {
	return "SF-Pro-Text-" + w.String() + ".otf"
}

// Candidates returns the file names to search for, most preferred first.
func (w Weight) Candidates() []string {
	return append([]string{w.Filename()}, Backups...)
}

// Lighter and Heavier step through the weights, stopping at the ends.
func (w Weight) Lighter() Weight {
	if w <= Ultralight {
		return Ultralight
	}
	return w - 1
}

func (w Weight) Heavier() Weight {
	if w >= Black {
		return Black
	}
	return w + 1
}

// ParseWeight accepts a weight name (case-insensitive) or its number 1-8.
func ParseWeight(s string) (Weight, error) {
	s = strings.TrimSpace(s)
	for _, w := range Weights() {
		if strings.EqualFold(s, w.String()) || s == fmt.Sprint(int(w)) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown font weight %q", s)
}

// LoadFace parses the font at path and returns a face whose size is px
// pixels. TrueType collections use their first font.
func LoadFace(path string, px float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f *opentype.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection %s: %w", path, err)
		}
		f, err = coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("font collection %s: %w", path, err)
		}
	} else {
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
