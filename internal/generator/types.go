package generator

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"fancyfolders/internal/colour"
	"fancyfolders/internal/fonts"
	"fancyfolders/internal/style"
)

// Method selects what the badge is made from.
type Method int

const (
	MethodNone Method = iota
	MethodImage
	MethodText
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodImage:
		return "image"
	case MethodText:
		return "text"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts "none", "image" or "text".
func ParseMethod(s string) (Method, error) {
	for _, m := range []Method{MethodNone, MethodImage, MethodText} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

var (
	ErrMissingText   = errors.New("generator: text badge needs text")
	ErrMissingImage  = errors.New("generator: image badge needs an image")
	ErrInvalidScale  = errors.New("generator: scale must be positive")
	ErrUnknownStyle  = errors.New("generator: unknown folder style")
	ErrUnknownMethod = errors.New("generator: unknown badge method")
)

// Scale limits offered to interactive callers.
const (
	MinScale           = 0.1
	MaxScale           = 1.5
	DefaultScale       = 1.0
	DefaultPreviewSize = 350
)

// Request describes one icon.
type Request struct {
	Style  style.Style
	Method Method
	Scale  float64
	// Tint recolours the finished icon when set.
	Tint *colour.RGB

	Text   string
	Weight fonts.Weight
	// FontPath overrides the font search.
	FontPath string

	Image image.Image

	// PreviewSize renders at this edge length instead of the style's native
	// size when positive.
	PreviewSize int

	// KeepGoing is polled before every stage; returning false abandons the
	// request.
	KeepGoing func() bool
}

func (r Request) validate() error {
	if !r.Style.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownStyle, r.Style)
	}
	if r.Scale <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScale, r.Scale)
	}
	switch r.Method {
	case MethodNone:
	case MethodText:
		if r.Text == "" {
			return ErrMissingText
		}
	case MethodImage:
		if r.Image == nil {
			return ErrMissingImage
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMethod, r.Method)
	}
	return nil
}

type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
)

func (s Status) String() string {
	if s == StatusCancelled {
		return "cancelled"
	}
	return "completed"
}

// Outcome is the result of Generate. Icon is nil when cancelled.
type Outcome struct {
	Status Status
	Icon   *image.NRGBA
}

// Stage names a step of the pipeline.
type Stage int

const (
	StageLoad Stage = iota
	StageShadow
	StageMask
	StagePlace
	StageShadowInsert
	StageHighlightInsert
	StageCombine
	StageTint
)

var stageNames = [...]string{
	StageLoad:            "load",
	StageShadow:          "shadow",
	StageMask:            "mask",
	StagePlace:           "place",
	StageShadowInsert:    "shadow-insert",
	StageHighlightInsert: "highlight-insert",
	StageCombine:         "combine",
	StageTint:            "tint",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}
