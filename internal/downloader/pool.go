// internal/downloader/pool.go
package downloader

import (
	"context"
	"sync"
)

// MaxConcurrency caps the number of workers in a pool
const MaxConcurrency = 16

// Job is one file to fetch into the batch directory
type Job struct {
	URL      string
	Filename string
}

// WorkerPool manages concurrent downloads using a worker pool pattern
type WorkerPool struct {
	downloader  *Downloader
	concurrency int
}

// NewWorkerPool creates a new worker pool with specified concurrency
func NewWorkerPool(d *Downloader, concurrency int) *WorkerPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}

	return &WorkerPool{
		downloader:  d,
		concurrency: concurrency,
	}
}

// DownloadBatch downloads every job into dir. Results are returned in job order;
// jobs never started because ctx was cancelled carry ctx.Err().
func (wp *WorkerPool) DownloadBatch(ctx context.Context, dir string, jobs []Job) []*DownloadResult {
	results := make([]*DownloadResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	queue := make(chan int)

	var wg sync.WaitGroup
	for w := 1; w <= wp.concurrency && w <= len(jobs); w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			wp.worker(ctx, id, dir, jobs, queue, results)
		}(w)
	}

send:
	for i := range jobs {
		select {
		case queue <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(queue)
	wg.Wait()

	for i, r := range results {
		if r == nil {
			results[i] = &DownloadResult{URL: jobs[i].URL, Error: ctx.Err()}
		}
	}
	return results
}

// worker processes download jobs from the queue
func (wp *WorkerPool) worker(ctx context.Context, id int, dir string, jobs []Job, queue <-chan int, results []*DownloadResult) {
	logger := wp.downloader.logger
	logger.Debug().Int("worker_id", id).Msg("Worker started")

	for i := range queue {
		logger.Debug().
			Int("worker_id", id).
			Str("url", jobs[i].URL).
			Msg("Worker processing download")

		results[i] = wp.downloader.Download(ctx, jobs[i].URL, DownloadOptions{
			OutputDir: dir,
			Filename:  jobs[i].Filename,
		})
	}

	logger.Debug().Int("worker_id", id).Msg("Worker finished")
}
