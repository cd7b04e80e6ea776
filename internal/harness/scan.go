package harness

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Scan runs one independent equilibrium experiment per temperature across a
// pool of workers. Point i is seeded with base.Sim.Seed+i, so results do not
// depend on the worker count. Results are returned in the order of temps.
func Scan(ctx context.Context, base Config, temps []float64, workers int) ([]*Result, error) {
	if len(temps) == 0 {
		return nil, fmt.Errorf("harness: scan needs at least one temperature")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(temps))

	type job struct {
		index int
		cfg   Config
	}
	type outcome struct {
		index int
		res   *Result
		err   error
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job)
	outcomes := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := Run(ctx, j.cfg)
				outcomes <- outcome{index: j.index, res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	go func() {
		defer close(jobs)
		for i, t := range temps {
			cfg := base
			cfg.Protocol = Equilibrium
			cfg.Sim.Temperature = t
			cfg.Sim.Seed = base.Sim.Seed + int64(i)
			select {
			case jobs <- job{index: i, cfg: cfg}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]*Result, len(temps))
	var firstErr error
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("harness: T=%s: %w", formatFloat(temps[o.index]), o.err)
				cancel()
			}
			continue
		}
		results[o.index] = o.res
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
