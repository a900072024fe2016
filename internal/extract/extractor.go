// Package extract maps a catalog search-results page into normalized photo records.
package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/fototeca/internal/utils/url"
	"github.com/law-makers/fototeca/pkg/models"
)

// SubjectLabel is the row label whose plain value is split on commas
const SubjectLabel = "soggetto"

// Selectors names the CSS selectors used to locate each part of a result.
// Empty fields fall back to DefaultSelectors.
type Selectors struct {
	Result    string `yaml:"result"`
	Image     string `yaml:"image"`
	TitleLink string `yaml:"title_link"`
	Row       string `yaml:"row"`
	Label     string `yaml:"label"`
	Value     string `yaml:"value"`
	Link      string `yaml:"link"`
}

// DefaultSelectors returns the selectors matching the catalog's result markup
func DefaultSelectors() Selectors {
	return Selectors{
		Result:    ".risultato",
		Image:     ".scheda-foto img",
		TitleLink: "h3 a",
		Row:       ".tabella .riga",
		Label:     ".def",
		Value:     ".dato",
		Link:      "a",
	}
}

func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if s.Result == "" {
		s.Result = d.Result
	}
	if s.Image == "" {
		s.Image = d.Image
	}
	if s.TitleLink == "" {
		s.TitleLink = d.TitleLink
	}
	if s.Row == "" {
		s.Row = d.Row
	}
	if s.Label == "" {
		s.Label = d.Label
	}
	if s.Value == "" {
		s.Value = d.Value
	}
	if s.Link == "" {
		s.Link = d.Link
	}
	return s
}

// Extractor turns result-page markup into PhotoRecords. It holds no state
// between calls and is safe to reuse.
type Extractor struct {
	sel Selectors
}

// New creates an Extractor using the given selectors
func New(sel Selectors) *Extractor {
	return &Extractor{sel: sel.withDefaults()}
}

// Extract parses html fetched from pageURL and returns its records in document order.
// Markup that cannot be parsed yields an empty slice.
func (e *Extractor) Extract(html, pageURL string) []models.PhotoRecord {
	records, err := e.ExtractReader(strings.NewReader(html), pageURL)
	if err != nil {
		return []models.PhotoRecord{}
	}
	return records
}

// ExtractReader is Extract over a stream. The error is only ever a read failure.
func (e *Extractor) ExtractReader(r io.Reader, pageURL string) ([]models.PhotoRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc, pageURL), nil
}

// ExtractDocument extracts records from an already parsed document
func (e *Extractor) ExtractDocument(doc *goquery.Document, pageURL string) []models.PhotoRecord {
	records := []models.PhotoRecord{}
	if doc == nil {
		return records
	}

	doc.Find(e.sel.Result).Each(func(_ int, result *goquery.Selection) {
		records = append(records, e.record(result, pageURL))
	})
	return records
}

func (e *Extractor) record(result *goquery.Selection, pageURL string) models.PhotoRecord {
	rec := models.PhotoRecord{Details: []models.DetailEntry{}}

	if src, _ := First(result, e.sel.Image).Attr("src"); src != "" {
		rec.ImageURL = urlutil.ResolveURL(pageURL, src)
	}

	if link := First(result, e.sel.TitleLink); link.Found() {
		href, _ := link.Attr("href")
		rec.Title = link.Text()
		rec.TitleURL = urlutil.ResolveURL(pageURL, href)
	}

	result.Find(e.sel.Row).Each(func(_ int, row *goquery.Selection) {
		if entry, ok := e.detail(row, pageURL); ok {
			rec.Details = append(rec.Details, entry)
		}
	})

	return rec
}

// detail reads one label/value row. Rows without a value cell are dropped.
func (e *Extractor) detail(row *goquery.Selection, pageURL string) (models.DetailEntry, bool) {
	label := First(row, e.sel.Label).Text()

	value := First(row, e.sel.Value)
	if !value.Found() {
		return models.DetailEntry{}, false
	}

	if link := First(value.Selection(), e.sel.Link); link.Found() {
		href, _ := link.Attr("href")
		original := urlutil.ResolveURL(pageURL, href)
		param, canonical := Canonicalize(original)
		return models.DetailEntry{
			Definition: label,
			Value: models.Linked{
				Text:         link.Text(),
				OriginalLink: original,
				SchedaParam:  param,
				SchedaLink:   canonical,
			},
		}, true
	}

	text := value.Text()
	if strings.EqualFold(label, SubjectLabel) {
		return models.DetailEntry{Definition: label, Value: splitList(text)}, true
	}
	return models.DetailEntry{Definition: label, Value: models.Scalar(text)}, true
}

func splitList(text string) models.List {
	parts := strings.Split(text, ",")
	out := make(models.List, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
