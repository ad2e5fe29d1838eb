package match

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Report is the result of evaluating a batch of lines.
type Report struct {
	Results  []bool // one per line
	Accepted int    // number of lines accepted
}

// Evaluate checks lines with rec, using at most workers goroutines. If
// workers < 1, the number of CPUs is used. The first error aborts the batch.
func Evaluate(ctx context.Context, rec *Recognizer, lines []string, workers int) (Report, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]bool, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := rec.Accepts(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	report := Report{Results: results}
	for _, ok := range results {
		if ok {
			report.Accepted++
		}
	}
	tracer().Debugf("accepted %d of %d lines", report.Accepted, len(lines))
	return report, nil
}
