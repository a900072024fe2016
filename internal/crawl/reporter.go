package crawl

import (
	"github.com/law-makers/fototeca/internal/engine"
	"github.com/rs/zerolog"
)

// Reporter observes the progress of a run. The Driver calls it synchronously.
type Reporter interface {
	RunStarted(start, end int)
	PageStarted(page int, url string)
	PageFinished(rep PageReport)
	RunFinished(sum Summary)
}

// NopReporter ignores every notice
type NopReporter struct{}

func (NopReporter) RunStarted(int, int)     {}
func (NopReporter) PageStarted(int, string) {}
func (NopReporter) PageFinished(PageReport) {}
func (NopReporter) RunFinished(Summary)     {}

// LogReporter writes per-page notices to a zerolog logger
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a Reporter backed by logger
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) RunStarted(start, end int) {
	r.logger.Info().Int("start", start).Int("end", end).Msg("Crawl started")
}

func (r *LogReporter) PageStarted(page int, url string) {
	r.logger.Info().Int("page", page).Str("url", url).Msg("Scraping page")
}

func (r *LogReporter) PageFinished(rep PageReport) {
	switch rep.Outcome {
	case Emitted:
		r.logger.Info().
			Int("page", rep.Page).
			Int("records", rep.Records).
			Dur("duration", rep.Duration).
			Msg("Page scraped successfully")
	case Skipped:
		r.logger.Warn().Int("page", rep.Page).Msg("No results found")
	case FetchFailed:
		r.logger.Error().
			Err(rep.Err).
			Int("page", rep.Page).
			Str("url", rep.URL).
			Str("code", string(engine.CodeOf(rep.Err))).
			Msg("Failed to scrape page")
	case SinkFailed:
		r.logger.Error().
			Err(rep.Err).
			Int("page", rep.Page).
			Int("records", rep.Records).
			Msg("Failed to save page")
	}
}

func (r *LogReporter) RunFinished(sum Summary) {
	r.logger.Info().
		Int("attempted", sum.Attempted).
		Int("emitted", sum.Emitted).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Int("records", sum.Records).
		Dur("duration", sum.Duration).
		Msg("Crawl finished")
}

// MultiReporter fans every notice out to each reporter in order
type MultiReporter []Reporter

func (m MultiReporter) RunStarted(start, end int) {
	for _, r := range m {
		r.RunStarted(start, end)
	}
}

func (m MultiReporter) PageStarted(page int, url string) {
	for _, r := range m {
		r.PageStarted(page, url)
	}
}

func (m MultiReporter) PageFinished(rep PageReport) {
	for _, r := range m {
		r.PageFinished(rep)
	}
}

func (m MultiReporter) RunFinished(sum Summary) {
	for _, r := range m {
		r.RunFinished(sum)
	}
}
