package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/slabcheck/slabcheck/internal/dom"
)

// BatchResult pairs a listing source with its pipeline outcome.
type BatchResult struct {
	Source  string
	Outcome Outcome
}

// RunBatch runs the pipeline over many saved listing files concurrently.
// maxConcurrent bounds the concurrency. A file that fails to load becomes
// an error outcome rather than aborting the batch.
func (r *Runner) RunBatch(ctx context.Context, paths []string, maxConcurrent int) []BatchResult {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	batchID := uuid.NewString()
	zap.L().Info("pipeline: batch started",
		zap.String("batch_id", batchID),
		zap.Int("listings", len(paths)),
		zap.Int("max_concurrent", maxConcurrent),
	)

	var (
		mu      sync.Mutex
		results []BatchResult
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			outcome := r.runFile(gCtx, path)
			mu.Lock()
			results = append(results, BatchResult{Source: path, Outcome: outcome})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("pipeline: batch finished",
		zap.String("batch_id", batchID),
		zap.Int("results", len(results)),
	)
	return results
}

func (r *Runner) runFile(ctx context.Context, path string) Outcome {
	f, err := os.Open(path)
	if err != nil {
		zap.L().Warn("pipeline: cannot open listing file",
			zap.String("path", path),
			zap.Error(err),
		)
		return Outcome{Kind: OutcomeError, ErrorMessage: "cannot open " + path, Retryable: false}
	}
	defer func() { _ = f.Close() }()

	view, err := dom.NewView(f)
	if err != nil {
		return Outcome{Kind: OutcomeError, ErrorMessage: "cannot parse " + path, Retryable: false}
	}
	return r.Run(ctx, dom.NewStaticSession(view))
}
