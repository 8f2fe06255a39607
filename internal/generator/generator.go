// Package generator composites a badge onto a macOS folder image.
//
// A badge source (text or a raster image) is reduced to a mask, fitted into
// the style's badge box and then used to build two inserts: a shadow insert
// that darkens the folder where the badge is, and a faint highlight insert
// offset below it. The two are alpha-composited and optionally tinted.
package generator

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fancyfolders/internal/assets"
	"fancyfolders/internal/colour"
	"fancyfolders/internal/fonts"
	"fancyfolders/internal/geometry"
	"fancyfolders/internal/mask"
	"fancyfolders/internal/raster"
	"fancyfolders/internal/style"
	"fancyfolders/internal/tint"
)

var (
	highlightColour = color.NRGBA{R: 0x13, G: 0x13, B: 0x13, A: 0xff}
	black           = color.NRGBA{A: 0xff}
)

// Generator renders folder icons. It is safe for concurrent use.
type Generator struct {
	loc    *assets.Locator
	tuning Tuning
	log    logrus.FieldLogger
	hook   func(Stage)

	mu    sync.Mutex
	bases map[style.Style]*image.NRGBA
}

type Option func(*Generator)

func WithTuning(t Tuning) Option {
	return func(g *Generator) { g.tuning = t }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithStageHook registers fn to be called as each stage starts.
func WithStageHook(fn func(Stage)) Option {
	return func(g *Generator) { g.hook = fn }
}

func New(loc *assets.Locator, opts ...Option) *Generator {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	g := &Generator{
		loc:    loc,
		tuning: DefaultTuning(),
		log:    quiet,
		bases:  make(map[style.Style]*image.NRGBA),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the icon described by req. A request abandoned through
// req.KeepGoing or ctx returns StatusCancelled with a nil error and no icon.
func (g *Generator) Generate(ctx context.Context, req Request) (Outcome, error) {
	if err := req.validate(); err != nil {
		return Outcome{}, err
	}

	log := g.log.WithFields(logrus.Fields{
		"style":  req.Style.String(),
		"method": req.Method.String(),
	})
	started := time.Now()
	last := started
	cancelled := Outcome{Status: StatusCancelled}

	enter := func(s Stage) bool {
		if req.KeepGoing != nil && !req.KeepGoing() {
			log.WithField("stage", s.String()).Debug("generation abandoned")
			return false
		}
		if ctx != nil && ctx.Err() != nil {
			log.WithField("stage", s.String()).Debug("generation cancelled")
			return false
		}
		now := time.Now()
		log.WithFields(logrus.Fields{"stage": s.String(), "since_last": now.Sub(last)}).Debug("stage")
		last = now
		if g.hook != nil {
			g.hook(s)
		}
		return true
	}

	if !enter(StageLoad) {
		return cancelled, nil
	}
	base, err := g.base(req.Style)
	if err != nil {
		return Outcome{}, err
	}
	size := req.Style.Size()
	if req.PreviewSize > 0 {
		size = req.PreviewSize
	}
	if b := base.Bounds(); b.Dx() != size || b.Dy() != size {
		base = raster.Resize(base, size, size)
	}

	if !enter(StageShadow) {
		return cancelled, nil
	}
	folder := raster.ScaleAlpha(base, g.tuning.ShadowIncrease)

	if req.Method == MethodNone {
		return g.finish(enter, req, folder, started, log)
	}

	if !enter(StageMask) {
		return cancelled, nil
	}
	badge, err := g.mask(req, size)
	if err != nil {
		return Outcome{}, err
	}
	if mask.IsBlack(badge) {
		// No ink leaves both inserts equal to the plain folder.
		log.Debug("badge mask is empty")
		return g.finish(enter, req, folder, started, log)
	}

	if !enter(StagePlace) {
		return cancelled, nil
	}
	box := geometry.FromFractions(req.Style.BadgeBox(), size).
		Scaled(req.Scale*g.tuning.BadgeBoxShrink, size, size)
	formatted := place(badge, box, size)

	if !enter(StageShadowInsert) {
		return cancelled, nil
	}
	shadowInsert := g.shadowInsert(folder, formatted, req.Style, size)

	if !enter(StageHighlightInsert) {
		return cancelled, nil
	}
	highlightInsert := g.highlightInsert(folder, formatted, size)

	if !enter(StageCombine) {
		return cancelled, nil
	}
	icon := raster.Over(highlightInsert, shadowInsert)

	return g.finish(enter, req, icon, started, log)
}

func (g *Generator) finish(enter func(Stage) bool, req Request, icon *image.NRGBA, started time.Time, log logrus.FieldLogger) (Outcome, error) {
	if req.Tint != nil {
		if !enter(StageTint) {
			return Outcome{Status: StatusCancelled}, nil
		}
		lut := tint.Build(req.Style.BaseColour(), *req.Tint, g.tuning.LUTSize)
		icon = lut.Apply(icon)
	}
	log.WithField("elapsed", time.Since(started)).Debug("icon generated")
	return Outcome{Status: StatusCompleted, Icon: icon}, nil
}

// base returns the decoded folder image for s. Decoded images are cached and
// never modified.
func (g *Generator) base(s style.Style) (*image.NRGBA, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if img, ok := g.bases[s]; ok {
		return img, nil
	}
	if g.loc == nil {
		return nil, fmt.Errorf("%w: no assets directory", assets.ErrAssetMissing)
	}
	img, err := g.loc.FolderImage(s)
	if err != nil {
		return nil, err
	}
	nrgba := raster.ToNRGBA(img)
	g.bases[s] = nrgba
	return nrgba, nil
}

func (g *Generator) mask(req Request, size int) (*image.Gray, error) {
	if req.Method == MethodImage {
		return mask.FromImage(req.Image, g.tuning.SigmoidSteepness), nil
	}

	path := req.FontPath
	if path == "" {
		if g.loc == nil {
			return nil, assets.ErrNoUsableFont
		}
		var err error
		path, err = g.loc.Font(req.Weight)
		if err != nil {
			return nil, err
		}
	}
	face, err := fonts.LoadFace(path, float64(size/2))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	return mask.FromText(req.Text, face, size/8), nil
}

// place fits badge into box on a black size×size canvas. The badge is pasted
// through itself, so each pixel becomes v*v/255.
func place(badge *image.Gray, box geometry.Box, size int) *image.Gray {
	formatted := image.NewGray(image.Rect(0, 0, size, size))
	fitted, at := geometry.ResizeToFit(badge, box)
	for y := 0; y < fitted.Rect.Dy(); y++ {
		dy := at.Y1 + y
		if dy < 0 || dy >= size {
			continue
		}
		for x := 0; x < fitted.Rect.Dx(); x++ {
			dx := at.X1 + x
			if dx < 0 || dx >= size {
				continue
			}
			v := uint32(fitted.Pix[y*fitted.Stride+x])
			formatted.Pix[dy*formatted.Stride+dx] = uint8((v*v + 127) / 255)
		}
	}
	return formatted
}

func (g *Generator) shadowInsert(folder *image.NRGBA, formatted *image.Gray, s style.Style, size int) *image.NRGBA {
	centre := colour.Divided(s.BaseColour(), s.BadgeColour())
	hsv := centre.HSV()
	hsv.V *= g.tuning.InnerShadowValueFactor
	shadow := colour.FromHSV(hsv)

	img := raster.Select(formatted, centre.NRGBA(), shadow.NRGBA())
	img = raster.GaussianBlur(img, g.tuning.InnerShadowBlur)
	img = raster.OffsetY(img, yOffset(size, g.tuning.InnerShadowYOffset))
	raster.PutAlpha(img, formatted)
	return raster.Multiply(folder, img)
}

func (g *Generator) highlightInsert(folder *image.NRGBA, formatted *image.Gray, size int) *image.NRGBA {
	img := raster.Select(formatted, highlightColour, black)
	img = raster.GaussianBlur(img, g.tuning.OuterHighlightBlur)
	img = raster.OffsetY(img, yOffset(size, g.tuning.OuterHighlightYOffset))
	raster.SetAlpha(img, 0)
	return raster.Add(folder, img)
}

func yOffset(size int, fraction float64) int {
	return int(math.Floor(float64(size) * fraction))
}
