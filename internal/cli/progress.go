package cli

import (
	"fmt"
	"io"

	"github.com/law-makers/fototeca/internal/crawl"
	"github.com/schollz/progressbar/v3"
)

// progressReporter draws one bar tick per finished page
type progressReporter struct {
	crawl.NopReporter
	out io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

func (p *progressReporter) RunStarted(start, end int) {
	p.bar = progressbar.NewOptions(end-start+1,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("Scraping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.out) }),
	)
}

func (p *progressReporter) PageStarted(page int, _ string) {
	if p.bar != nil {
		p.bar.Describe(fmt.Sprintf("Page %d", page))
	}
}

func (p *progressReporter) PageFinished(crawl.PageReport) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressReporter) RunFinished(crawl.Summary) {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
