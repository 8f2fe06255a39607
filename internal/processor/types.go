package processor

import (
	"context"

	"github.com/sirupsen/logrus"

	"fancyfolders/internal/colour"
	"fancyfolders/internal/generator"
	"fancyfolders/internal/style"
)

// Renderer produces icons. *generator.Generator implements it.
type Renderer interface {
	Generate(ctx context.Context, req generator.Request) (generator.Outcome, error)
}

type Options struct {
	OutputDir   string
	Style       style.Style
	Scale       float64
	Tint        *colour.RGB
	PreviewSize int
	// ICO also writes a .ico next to every .png.
	ICO     bool
	Workers int
	Log     logrus.FieldLogger
}

type Job struct {
	Path    string
	RelPath string
	Display string
}

type Result struct {
	Path         string
	RelPath      string
	Display      string
	Supported    bool
	Err          error
	Outputs      []string
	BytesWritten int64
}

type Summary struct {
	Total        int
	Processed    int
	Errors       int
	BytesWritten int64
}

// Report describes one badge image that was picked up.
type Report struct {
	Path    string
	Outputs []string
	Err     error
}

type ProgressUpdate struct {
	TotalDelta        int
	ProcessedDelta    int
	ErrorDelta        int
	BytesWrittenDelta int64
}
