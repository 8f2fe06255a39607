// Package style describes the macOS folder artwork a badge is drawn onto.
package style

import (
	"fmt"
	"strings"

	"fancyfolders/internal/colour"
)

// Style identifies one of the bundled folder images.
type Style int

const (
	BigSurLight Style = iota
	BigSurDark
	Catalina
)

// Default is the style used when none is requested.
const Default = BigSurLight

type attributes struct {
	key         string
	filename    string
	displayName string
	size        int
	badgeBox    [4]float64
	previewCrop [4]float64
	baseColour  colour.RGB
	badgeColour colour.RGB
}

var table = [...]attributes{
	BigSurLight: {
		key:         "big-sur-light",
		filename:    "big_sur_light.png",
		displayName: "Big Sur - Light",
		size:        1024,
		badgeBox:    [4]float64{0.086, 0.29, 0.914, 0.777},
		previewCrop: [4]float64{0, 0.0888, 1.0, 0.9276},
		baseColour:  colour.RGB{R: 116, G: 208, B: 251},
		badgeColour: colour.RGB{R: 63, G: 170, B: 229},
	},
	BigSurDark: {
		key:         "big-sur-dark",
		filename:    "big_sur_dark.png",
		displayName: "Big Sur - Dark",
		size:        1024,
		badgeBox:    [4]float64{0.086, 0.29, 0.914, 0.777},
		previewCrop: [4]float64{0, 0.0888, 1.0, 0.9276},
		baseColour:  colour.RGB{R: 96, G: 208, B: 255},
		badgeColour: colour.RGB{R: 53, G: 160, B: 225},
	},
	Catalina: {
		key:         "catalina",
		filename:    "catalina.png",
		displayName: "Catalina",
		size:        1024,
		badgeBox:    [4]float64{0.0668, 0.281, 0.9332, 0.770},
		previewCrop: [4]float64{0, 0.0972, 1.0, 0.896},
		baseColour:  colour.RGB{R: 120, G: 210, B: 251},
		// Catalina's own badge tone was never sampled; it shares Big Sur's.
		badgeColour: colour.RGB{R: 63, G: 170, B: 229},
	},
}

// All returns every style in declaration order.
func All() []Style {
	return []Style{BigSurLight, BigSurDark, Catalina}
}

func (s Style) Valid() bool {
	return s >= 0 && int(s) < len(table)
}

func (s Style) attrs() attributes {
	if !s.Valid() {
		return attributes{}
	}
	return table[s]
}

// String returns the style's command-line key, e.g. "big-sur-light".
func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return table[s].key
}

// Filename is the folder image's file name inside the assets directory.
func (s Style) Filename() string { return s.attrs().filename }

func (s Style) DisplayName() string { return s.attrs().displayName }

// Size is the edge length of the (square) folder image in pixels.
func (s Style) Size() int { return s.attrs().size }

// BadgeBox is the region, as (x1, y1, x2, y2) fractions of the folder size,
// that a badge is fitted into.
func (s Style) BadgeBox() [4]float64 { return s.attrs().badgeBox }

// PreviewCrop is the smallest fractional region that still shows the whole
// folder; previews are cropped to it.
func (s Style) PreviewCrop() [4]float64 { return s.attrs().previewCrop }

// BaseColour is the average folder colour behind the badge.
func (s Style) BaseColour() colour.RGB { return s.attrs().baseColour }

// BadgeColour is the average colour of the system's own folder glyphs.
func (s Style) BadgeColour() colour.RGB { return s.attrs().badgeColour }

// Next cycles through the styles.
func (s Style) Next() Style {
	return Style((int(s) + 1) % len(table))
}

// Parse accepts a style key, its underscore form or its display name.
func Parse(name string) (Style, error) {
	norm := normalize(name)
	for _, s := range All() {
		a := table[s]
		if norm == normalize(a.key) || norm == normalize(a.displayName) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown folder style %q", name)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}
