// Package regen regenerates icons in the background for interactive callers.
// Every submission supersedes the previous one: older requests are abandoned
// at their next stage boundary and their results are never delivered.
package regen

import (
	"context"
	"image"
	"io"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fancyfolders/internal/generator"
	"fancyfolders/internal/style"
)

// Renderer produces icons. *generator.Generator implements it.
type Renderer interface {
	Generate(ctx context.Context, req generator.Request) (generator.Outcome, error)
}

// Result is delivered for the most recent submission only.
type Result struct {
	Token uuid.UUID
	Style style.Style
	Icon  *image.NRGBA
	Err   error
}

type job struct {
	token uuid.UUID
	req   generator.Request
}

type Scheduler struct {
	renderer Renderer
	log      logrus.FieldLogger

	jobs    chan job
	results chan Result

	mu     sync.Mutex
	latest uuid.UUID

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// New starts workers goroutines (runtime.NumCPU() when workers <= 0).
func New(r Renderer, workers int, log logrus.FieldLogger) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		renderer: r,
		log:      log,
		jobs:     make(chan job, workers),
		results:  make(chan Result, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer s.wg.Done()
			s.worker()
		}()
	}
	return s
}

// Submit queues req and returns its token. Any earlier request still running
// stops at its next stage.
func (s *Scheduler) Submit(req generator.Request) uuid.UUID {
	token := uuid.New()

	s.mu.Lock()
	s.latest = token
	s.mu.Unlock()

	keep := req.KeepGoing
	req.KeepGoing = func() bool {
		return s.IsLatest(token) && (keep == nil || keep())
	}

	select {
	case s.jobs <- job{token: token, req: req}:
		s.log.WithField("token", token).Debug("regeneration queued")
	case <-s.ctx.Done():
	}
	return token
}

// IsLatest reports whether token belongs to the most recent submission.
func (s *Scheduler) IsLatest(token uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest == token
}

// Results delivers the outcome of the latest submission. It is closed by Close.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Close stops the workers and closes the results channel.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		close(s.results)
	})
}

func (s *Scheduler) worker() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case j := <-s.jobs:
			s.run(j)
		}
	}
}

func (s *Scheduler) run(j job) {
	log := s.log.WithField("token", j.token)
	if !s.IsLatest(j.token) {
		log.Debug("stale request skipped")
		return
	}

	out, err := s.renderer.Generate(s.ctx, j.req)
	if err == nil && out.Status == generator.StatusCancelled {
		log.Debug("superseded request abandoned")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != j.token {
		log.Debug("stale result discarded")
		return
	}
	res := Result{Token: j.token, Style: j.req.Style, Err: err}
	if err == nil {
		res.Icon = out.Icon
	}
	for {
		select {
		case s.results <- res:
			return
		case <-s.ctx.Done():
			return
		default:
			// Replace an undelivered result; it belongs to an older token.
			select {
			case old := <-s.results:
				log.WithField("dropped", old.Token).Debug("undelivered result replaced")
			default:
			}
		}
	}
}
