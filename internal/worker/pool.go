// Package worker runs independent source-collection jobs on a bounded
// pool. Adapters share no mutable state, so fan-out needs no locking
// beyond the channels here; the merge stage runs after Run returns.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/hsolkim/seaboard/internal/model"
)

// Job is one source-collection unit: a named closure returning the
// records it extracted or the error that sank the whole source.
type Job struct {
	Name    string
	Adapter string
	Run     func(ctx context.Context) ([]model.ArticleRecord, error)
}

// Result pairs a job with its outcome.
type Result struct {
	Name    string
	Adapter string
	Records []model.ArticleRecord
	Err     error
	Elapsed time.Duration
}

// Pool executes jobs with bounded concurrency.
type Pool struct {
	workers int
}

// NewPool creates a pool. Fewer than one worker degrades to sequential
// execution.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns one result per job, in completion
// order. A job error is captured in its result; Run itself never fails.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	jobCh := make(chan Job)
	resultCh := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				start := time.Now()
				records, err := job.Run(ctx)
				resultCh <- Result{
					Name:    job.Name,
					Adapter: job.Adapter,
					Records: records,
					Err:     err,
					Elapsed: time.Since(start),
				}
			}
		}()
	}

	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
		}
	}
	close(jobCh)
	wg.Wait()
	close(resultCh)

	results := make([]Result, 0, len(jobs))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}
