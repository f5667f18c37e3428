package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kritika75/LambdaCalc/pkg/logging"
)

// Engine evaluates batches of requests against a Kernel.
type Engine struct {
	cfg    Config
	kernel *Kernel
	log    *logging.Logger
}

// New creates an engine from the given config. A nil logger discards
// output.
func New(cfg Config, log *logging.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{cfg: cfg, kernel: NewKernel(cfg), log: log}, nil
}

// Kernel returns the kernel the engine dispatches to.
func (e *Engine) Kernel() *Kernel { return e.kernel }

// Config returns the engine's settings.
func (e *Engine) Config() Config { return e.cfg }

// Run evaluates reqs in parallel and returns their results in request
// order. Requests still queued when ctx is done fail with ctx's error.
func (e *Engine) Run(ctx context.Context, reqs []Request) Report {
	report := Report{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Results: make([]Result, len(reqs)),
	}
	log := e.log.With(zap.String("run", report.RunID))
	log.Debug("run started", zap.Int("requests", len(reqs)), zap.Int("workers", e.cfg.Workers))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	type job struct {
		idx int
		req Request
	}

	jobs := make(chan job, len(reqs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				report.Results[j.idx] = e.evaluate(ctx, log, j.req)
			}
		}()
	}

	for i, r := range reqs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		jobs <- job{idx: i, req: r}
	}
	close(jobs)
	wg.Wait()

	for _, r := range report.Results {
		if !r.OK() {
			report.Failed++
		}
	}
	report.Elapsed = time.Since(report.Started)
	log.Info("run finished",
		zap.Int("requests", len(reqs)),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Elapsed))
	return report
}

func (e *Engine) evaluate(ctx context.Context, log *logging.Logger, req Request) Result {
	res := e.kernel.Dispatch(ctx, req)
	fields := []zap.Field{
		zap.String("op", req.Operation),
		zap.String("id", req.ID),
		zap.Duration("duration", res.Elapsed),
	}
	switch {
	case res.err != nil:
		log.Warn("operation failed", append(fields, zap.Error(res.err))...)
	case res.Approximate:
		log.Info("approximate result", append(fields, zap.String("method", res.Method))...)
	default:
		log.Debug("operation done", fields...)
	}
	return res
}
