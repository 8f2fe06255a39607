package colour

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the built-in set of pastel tint colours.
var Palette = map[string]RGB{
	"red":    {255, 154, 162},
	"melon":  {255, 183, 178},
	"orange": {255, 218, 193},
	"yellow": {255, 236, 209},
	"green":  {226, 240, 203},
	"teal":   {181, 234, 215},
	"purple": {199, 206, 234},
	"white":  {250, 249, 246},
	"cream":  {255, 250, 240},
}

// PaletteNames returns the palette keys in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(Palette))
	for name := range Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a palette name or a #rrggbb / rrggbb hex string.
func Lookup(value string) (RGB, error) {
	value = strings.TrimSpace(value)
	if c, ok := Palette[strings.ToLower(value)]; ok {
		return c, nil
	}

	hex := value
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("unknown colour %q: not a palette name or hex value", value)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
