// Package crawl drives a page-number range through fetch, extract and emit.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/law-makers/fototeca/internal/engine"
	"github.com/law-makers/fototeca/internal/reqctx"
	urlutil "github.com/law-makers/fototeca/internal/utils/url"
	"github.com/law-makers/fototeca/pkg/models"
)

// Extractor turns page markup into records
type Extractor interface {
	Extract(html, pageURL string) []models.PhotoRecord
}

// Sink receives the records of every page that produced any
type Sink interface {
	Emit(ctx context.Context, page int, records []models.PhotoRecord) error
}

// Outcome is the terminal state of one page
type Outcome int

const (
	// Emitted: records were handed to the sink
	Emitted Outcome = iota
	// Skipped: the page was fetched but held no records
	Skipped
	// FetchFailed: the page could not be retrieved
	FetchFailed
	// SinkFailed: records were extracted but the sink rejected them
	SinkFailed
)

// String returns the outcome name used in logs
func (o Outcome) String() string {
	switch o {
	case Emitted:
		return "emitted"
	case Skipped:
		return "skipped"
	case FetchFailed:
		return "fetch_failed"
	case SinkFailed:
		return "sink_failed"
	default:
		return "unknown"
	}
}

// PageReport describes how one page ended
type PageReport struct {
	Page     int
	URL      string
	Outcome  Outcome
	Records  int
	Err      error
	Duration time.Duration
}

// Summary aggregates a full run
type Summary struct {
	Start, End int
	Attempted  int
	Emitted    int
	Skipped    int
	Failed     int
	Records    int
	Duration   time.Duration
}

// Driver walks [start, end] one page at a time. A failure on one page never
// stops the range; nothing carries over between pages but the counter.
type Driver struct {
	fetcher   engine.Fetcher
	extractor Extractor
	sink      Sink
	reporter  Reporter
	pageURL   func(page int) string
}

// NewDriver creates a Driver for the catalog rooted at siteBase.
// A nil reporter discards all notices.
func NewDriver(siteBase string, f engine.Fetcher, e Extractor, s Sink, r Reporter) *Driver {
	if r == nil {
		r = NopReporter{}
	}
	return &Driver{
		fetcher:   f,
		extractor: e,
		sink:      s,
		reporter:  r,
		pageURL: func(page int) string {
			return urlutil.PageURL(siteBase, page)
		},
	}
}

// Run processes every page from start to end inclusive, in ascending order
func (d *Driver) Run(ctx context.Context, start, end int) (Summary, error) {
	if start < 1 || end < start {
		return Summary{}, fmt.Errorf("invalid page range %d..%d", start, end)
	}

	began := time.Now()
	sum := Summary{Start: start, End: end}
	d.reporter.RunStarted(start, end)

	for page := start; page <= end; page++ {
		rep := d.Page(ctx, page)

		sum.Attempted++
		switch rep.Outcome {
		case Emitted:
			sum.Emitted++
			sum.Records += rep.Records
		case Skipped:
			sum.Skipped++
		default:
			sum.Failed++
		}
	}

	sum.Duration = time.Since(began)
	d.reporter.RunFinished(sum)
	return sum, nil
}

// Page runs a single page through Pending → Fetching → Extracted/FetchFailed → Emitted/Skipped
func (d *Driver) Page(ctx context.Context, page int) PageReport {
	began := time.Now()
	url := d.pageURL(page)
	ctx = reqctx.WithPage(ctx, page)
	rep := PageReport{Page: page, URL: url}

	d.reporter.PageStarted(page, url)

	html, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		rep.Outcome = FetchFailed
		rep.Err = err
		rep.Duration = time.Since(began)
		d.reporter.PageFinished(rep)
		return rep
	}

	records := d.extractor.Extract(html, url)
	rep.Records = len(records)

	if len(records) == 0 {
		rep.Outcome = Skipped
		rep.Duration = time.Since(began)
		d.reporter.PageFinished(rep)
		return rep
	}

	if err := d.sink.Emit(ctx, page, records); err != nil {
		rep.Outcome = SinkFailed
		rep.Err = err
	} else {
		rep.Outcome = Emitted
	}
	rep.Duration = time.Since(began)
	d.reporter.PageFinished(rep)
	return rep
}
