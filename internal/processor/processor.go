// Package processor turns a directory of badge images into folder icons.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"fancyfolders/internal/generator"
	"fancyfolders/internal/output"
	"fancyfolders/pkg/imgutil"
)

// Run walks root and generates one icon per supported image, writing
// <OutputDir>/<relative path>.png (and .ico when requested). Progress deltas
// are sent to updates when it is non-nil.
func Run(ctx context.Context, root string, r Renderer, opts Options, updates chan<- ProgressUpdate) (Summary, []Report, error) {
	summary := Summary{}
	var reports []Report

	if opts.OutputDir == "" {
		return summary, nil, fmt.Errorf("output directory required")
	}
	if opts.Scale <= 0 {
		opts.Scale = generator.DefaultScale
	}
	if opts.Log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		opts.Log = quiet
	}

	info, err := os.Stat(root)
	if err != nil {
		return summary, nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return summary, nil, err
	}

	var outputInsideRoot bool
	outputAbs, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return summary, nil, err
	}
	if outputAbs != filepath.Clean(absRoot) && isWithin(outputAbs, absRoot) {
		outputInsideRoot = true
	}

	jobs := make(chan Job)
	results := make(chan Result)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, jobs, results, r, opts, updates)
		}()
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			if res.Supported {
				summary.Total++
			}
			if res.Err != nil {
				summary.Errors++
				if updates != nil {
					updates <- ProgressUpdate{ErrorDelta: 1}
				}
			} else if res.Supported {
				summary.Processed++
				if updates != nil {
					updates <- ProgressUpdate{ProcessedDelta: 1}
				}
			}
			if res.BytesWritten != 0 {
				summary.BytesWritten += res.BytesWritten
				if updates != nil {
					updates <- ProgressUpdate{BytesWrittenDelta: res.BytesWritten}
				}
			}
			if res.Supported || res.Err != nil {
				reports = append(reports, Report{Path: res.Display, Outputs: res.Outputs, Err: res.Err})
			}
		}
	}()

	producerErr := make(chan error, 1)
	go func() {
		defer close(jobs)

		sendJob := func(job Job) error {
			select {
			case jobs <- job:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if !info.IsDir() {
			producerErr <- sendJob(Job{
				Path:    absRoot,
				RelPath: filepath.Base(absRoot),
				Display: filepath.Base(absRoot),
			})
			return
		}

		fsys := os.DirFS(absRoot)
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if outputInsideRoot && isWithin(filepath.Join(absRoot, path), outputAbs) {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			return sendJob(Job{
				Path:    filepath.Join(absRoot, path),
				RelPath: filepath.FromSlash(path),
				Display: path,
			})
		})
		producerErr <- err
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	if err := <-producerErr; err != nil && !errors.Is(err, context.Canceled) {
		return summary, reports, err
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return summary, reports, err
	}

	return summary, reports, nil
}

func worker(ctx context.Context, jobs <-chan Job, results chan<- Result, r Renderer, opts Options, updates chan<- ProgressUpdate) {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			return
		}

		res := Result{Path: job.Path, RelPath: job.RelPath, Display: job.Display}

		file, err := os.Open(job.Path)
		if err != nil {
			res.Err = err
			results <- res
			continue
		}

		kind, err := imgutil.SniffReader(file)
		if err != nil || kind == imgutil.KindUnknown {
			// Too short to be an image, or not one we decode.
			_ = file.Close()
			continue
		}

		res.Supported = true
		if updates != nil {
			updates <- ProgressUpdate{TotalDelta: 1}
		}

		outputs, written, err := processFile(ctx, file, kind, job, r, opts)
		_ = file.Close()
		res.Outputs = outputs
		res.BytesWritten = written
		if err != nil {
			opts.Log.WithError(err).WithField("path", job.Display).Debug("badge image failed")
			res.Err = err
		}
		results <- res
	}
}

func processFile(ctx context.Context, file *os.File, kind imgutil.Kind, job Job, r Renderer, opts Options) ([]string, int64, error) {
	badge, err := imgutil.Decode(file)
	if err != nil {
		return nil, 0, err
	}
	if kind.HasExif() {
		if o, err := imgutil.Orientation(file); err == nil {
			badge = imgutil.Orient(badge, o)
		}
	}

	out, err := r.Generate(ctx, generator.Request{
		Style:       opts.Style,
		Method:      generator.MethodImage,
		Scale:       opts.Scale,
		Tint:        opts.Tint,
		Image:       badge,
		PreviewSize: opts.PreviewSize,
	})
	if err != nil {
		return nil, 0, err
	}
	if out.Status != generator.StatusCompleted {
		return nil, 0, context.Canceled
	}

	pngPath, err := resolveDestination(job, opts, ".png")
	if err != nil {
		return nil, 0, err
	}
	written, err := output.WritePNG(pngPath, out.Icon)
	if err != nil {
		return nil, 0, err
	}
	outputs := []string{pngPath}

	if opts.ICO {
		icoPath, err := resolveDestination(job, opts, ".ico")
		if err != nil {
			return outputs, written, err
		}
		n, err := output.WriteICO(icoPath, out.Icon)
		if err != nil {
			return outputs, written, err
		}
		written += n
		outputs = append(outputs, icoPath)
	}
	return outputs, written, nil
}

func resolveDestination(job Job, opts Options, ext string) (string, error) {
	rel := strings.TrimSuffix(job.RelPath, filepath.Ext(job.RelPath)) + ext
	destPath := filepath.Join(opts.OutputDir, rel)
	if filepath.Clean(destPath) == filepath.Clean(job.Path) {
		return "", fmt.Errorf("output path resolves to input path; use a different --output")
	}
	return destPath, nil
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
