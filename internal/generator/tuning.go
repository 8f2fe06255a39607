package generator

import (
	"fancyfolders/internal/mask"
	"fancyfolders/internal/tint"
)

const (
	DefaultShadowIncrease         = 1.9
	DefaultInnerShadowValueFactor = 0.9
	DefaultInnerShadowBlur        = 3
	DefaultInnerShadowYOffset     = 0.00293
	DefaultOuterHighlightBlur     = 6
	DefaultOuterHighlightYOffset  = 0.00782
	DefaultBadgeBoxShrink         = 0.84
)

// Tuning holds the numbers that shape the look of a badge. Offsets are
// fractions of the icon size; blurs are radii in pixels.
type Tuning struct {
	ShadowIncrease         float64 `mapstructure:"shadow_increase"`
	InnerShadowValueFactor float64 `mapstructure:"inner_shadow_value_factor"`
	InnerShadowBlur        float64 `mapstructure:"inner_shadow_blur"`
	InnerShadowYOffset     float64 `mapstructure:"inner_shadow_y_offset"`
	OuterHighlightBlur     float64 `mapstructure:"outer_highlight_blur"`
	OuterHighlightYOffset  float64 `mapstructure:"outer_highlight_y_offset"`
	BadgeBoxShrink         float64 `mapstructure:"badge_box_shrink"`
	SigmoidSteepness       float64 `mapstructure:"sigmoid_steepness"`
	LUTSize                int     `mapstructure:"lut_size"`
}

// DefaultTuning matches the look of the system folder glyphs.
func DefaultTuning() Tuning {
	return Tuning{
		ShadowIncrease:         DefaultShadowIncrease,
		InnerShadowValueFactor: DefaultInnerShadowValueFactor,
		InnerShadowBlur:        DefaultInnerShadowBlur,
		InnerShadowYOffset:     DefaultInnerShadowYOffset,
		OuterHighlightBlur:     DefaultOuterHighlightBlur,
		OuterHighlightYOffset:  DefaultOuterHighlightYOffset,
		BadgeBoxShrink:         DefaultBadgeBoxShrink,
		SigmoidSteepness:       mask.DefaultSteepness,
		LUTSize:                tint.DefaultSize,
	}
}
