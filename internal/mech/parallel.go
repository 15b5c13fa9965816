package mech

import (
	"context"
	"sync"
)

// Ensemble runs independently built linkages in parallel. Each run gets
// its own linkage from the factory, so no state is shared between
// goroutines.
type Ensemble struct {
	build   func(run int) (*Linkage, error)
	numRuns int
}

func NewEnsemble(build func(run int) (*Linkage, error), numRuns int) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns}
}

// Run executes every member for n steps. Records and errors are indexed
// by run; a run that locks reports its own error without disturbing the
// others.
func (e *Ensemble) Run(ctx context.Context, n int, tracked ...string) ([]*Record, []error) {
	records := make([]*Record, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			l, err := e.build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			records[idx], errs[idx] = l.Run(ctx, n, tracked...)
		}(i)
	}
	wg.Wait()

	return records, errs
}
