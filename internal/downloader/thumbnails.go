package downloader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/law-makers/fototeca/pkg/models"
	"github.com/rs/zerolog"
)

// ThumbnailSink downloads the image of every emitted record into
// <dir>/page_<n>/. Failed downloads are logged and never fail the page.
type ThumbnailSink struct {
	pool   *WorkerPool
	dir    string
	logger zerolog.Logger
}

// NewThumbnailSink creates a sink writing below dir
func NewThumbnailSink(pool *WorkerPool, dir string, logger zerolog.Logger) *ThumbnailSink {
	return &ThumbnailSink{pool: pool, dir: dir, logger: logger}
}

// Emit downloads the thumbnails of records. It always returns nil.
func (s *ThumbnailSink) Emit(ctx context.Context, page int, records []models.PhotoRecord) error {
	jobs := Jobs(records)
	if len(jobs) == 0 {
		return nil
	}

	dir := s.PageDir(page)
	results := s.pool.DownloadBatch(ctx, dir, jobs)

	ok := 0
	for _, r := range results {
		if r.Success {
			ok++
			continue
		}
		s.logger.Warn().Err(r.Error).Int("page", page).Str("url", r.URL).Msg("Thumbnail download failed")
	}

	s.logger.Debug().
		Int("page", page).
		Int("downloaded", ok).
		Int("failed", len(results)-ok).
		Str("dir", dir).
		Msg("Thumbnails saved")
	return nil
}

// PageDir is the directory receiving the thumbnails of page
func (s *ThumbnailSink) PageDir(page int) string {
	return filepath.Join(s.dir, fmt.Sprintf("page_%d", page))
}

// Jobs lists one job per record with an image. File names are prefixed with
// the record's position so two records sharing an image name do not collide.
func Jobs(records []models.PhotoRecord) []Job {
	var jobs []Job
	for i, rec := range records {
		if rec.ImageURL == "" {
			continue
		}
		jobs = append(jobs, Job{
			URL:      rec.ImageURL,
			Filename: fmt.Sprintf("%03d_%s", i+1, sanitizeFilename(rec.ImageURL)),
		})
	}
	return jobs
}
