package extract_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/fototeca/internal/extract"
	"github.com/law-makers/fototeca/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://archive.example.org/it/fondi/fototeca/sem-ricerca.php?cerca=1&p=2"

const twoResults = `<!DOCTYPE html>
<html><body>
<div class="risultati">
  <div class="risultato">
    <div class="scheda-foto"><img src="thumbs/0001.jpg" alt=""></div>
    <h3><a href="ava-ricerca.php?scheda=123&amp;lang=it">  Padiglione Italia  </a></h3>
    <div class="tabella">
      <div class="riga"><div class="def">Autore</div><div class="dato"><a href="/it/ava-ricerca.php?scheda=77&amp;ordine=2&amp;lang=it">Giacomelli, Mario</a></div></div>
      <div class="riga"><div class="def">Data</div><div class="dato"> 1958 </div></div>
      <div class="riga"><div class="def">SOGGETTO</div><div class="dato">Arte, Biennale ,Venezia</div></div>
      <div class="riga"><div class="def">Note</div></div>
    </div>
  </div>
  <div class="risultato">
    <h3>Senza link</h3>
    <div class="tabella">
      <div class="riga"><div class="dato">Città di Venezia</div></div>
    </div>
  </div>
</div>
</body></html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	records := extract.New(extract.Selectors{}).Extract(twoResults, pageURL)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Padiglione Italia", first.Title)
	assert.Equal(t, "https://archive.example.org/it/fondi/fototeca/ava-ricerca.php?scheda=123&lang=it", first.TitleURL)
	assert.Equal(t, "https://archive.example.org/it/fondi/fototeca/thumbs/0001.jpg", first.ImageURL)
	require.Len(t, first.Details, 3, "row without value cell must be dropped")

	author := first.Details[0]
	assert.Equal(t, "Autore", author.Definition)
	linked, ok := author.Value.(models.Linked)
	require.True(t, ok, "expected linked value, got %T", author.Value)
	assert.Equal(t, "Giacomelli, Mario", linked.Text)
	assert.Equal(t, "https://archive.example.org/it/ava-ricerca.php?scheda=77&ordine=2&lang=it", linked.OriginalLink)
	require.NotNil(t, linked.SchedaParam)
	assert.Equal(t, "77", *linked.SchedaParam)
	require.NotNil(t, linked.SchedaLink)
	assert.Equal(t, "https://archive.example.org/it/ava-ricerca.php?scheda=77", *linked.SchedaLink)

	assert.Equal(t, models.DetailEntry{Definition: "Data", Value: models.Scalar("1958")}, first.Details[1])
	assert.Equal(t, models.DetailEntry{Definition: "SOGGETTO", Value: models.List{"Arte", "Biennale", "Venezia"}}, first.Details[2])

	second := records[1]
	assert.Equal(t, "", second.Title)
	assert.Equal(t, "", second.TitleURL)
	assert.Equal(t, "", second.ImageURL)
	require.Len(t, second.Details, 1)
	assert.Equal(t, models.DetailEntry{Definition: "", Value: models.Scalar("Città di Venezia")}, second.Details[0])
}

func TestExtractor_Extract_Idempotent(t *testing.T) {
	t.Parallel()

	e := extract.New(extract.DefaultSelectors())
	assert.Equal(t, e.Extract(twoResults, pageURL), e.Extract(twoResults, pageURL))
}

func TestExtractor_Extract_SubjectCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"Soggetto", "soggetto", "sOgGeTtO"} {
		html := `<div class="risultato"><div class="tabella"><div class="riga">` +
			`<span class="def">` + label + `</span><span class="dato">A, B ,C</span></div></div></div>`

		records := extract.New(extract.Selectors{}).Extract(html, pageURL)
		require.Len(t, records, 1)
		require.Len(t, records[0].Details, 1)
		assert.Equal(t, models.List{"A", "B", "C"}, records[0].Details[0].Value, label)
	}
}

func TestExtractor_Extract_NonSubjectKeepsCommas(t *testing.T) {
	t.Parallel()

	html := `<div class="risultato"><div class="tabella"><div class="riga">` +
		`<div class="def">Luogo</div><div class="dato">Venezia, Giardini</div></div></div></div>`

	records := extract.New(extract.Selectors{}).Extract(html, pageURL)
	require.Len(t, records, 1)
	assert.Equal(t, models.Scalar("Venezia, Giardini"), records[0].Details[0].Value)
}

func TestExtractor_Extract_ImageWithoutSrc(t *testing.T) {
	t.Parallel()

	html := `<div class="risultato"><div class="scheda-foto"><img alt="x"></div></div>`

	records := extract.New(extract.Selectors{}).Extract(html, pageURL)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].ImageURL)
	assert.NotNil(t, records[0].Details)
	assert.Empty(t, records[0].Details)
}

func TestExtractor_Extract_LinkWithoutScheda(t *testing.T) {
	t.Parallel()

	html := `<div class="risultato"><div class="tabella"><div class="riga">` +
		`<div class="def">Fondo</div><div class="dato"><a href="fondi.php?id=4">Fototeca</a></div></div></div></div>`

	records := extract.New(extract.Selectors{}).Extract(html, pageURL)
	require.Len(t, records, 1)
	linked, ok := records[0].Details[0].Value.(models.Linked)
	require.True(t, ok)
	assert.Equal(t, "https://archive.example.org/it/fondi/fototeca/fondi.php?id=4", linked.OriginalLink)
	assert.Nil(t, linked.SchedaParam)
	assert.Nil(t, linked.SchedaLink)
}

func TestExtractor_Extract_NoResults(t *testing.T) {
	t.Parallel()

	e := extract.New(extract.Selectors{})
	for _, html := range []string{"", "<html><body><p>Nessun risultato</p></body></html>", "<div class=\"risultato\"", "\x00\x01<<>>"} {
		records := e.Extract(html, pageURL)
		assert.NotNil(t, records)
		for _, r := range records {
			assert.NotNil(t, r.Details)
		}
	}
	assert.Empty(t, e.Extract("<p>niente</p>", pageURL))
}

func TestExtractor_Extract_CustomSelectors(t *testing.T) {
	t.Parallel()

	html := `<ul><li class="hit"><h2><a href="/s/1">Uno</a></h2></li><li class="hit"><h2><a href="/s/2">Due</a></h2></li></ul>`
	e := extract.New(extract.Selectors{Result: "li.hit", TitleLink: "h2 a"})

	records := e.Extract(html, pageURL)
	require.Len(t, records, 2)
	assert.Equal(t, "Uno", records[0].Title)
	assert.Equal(t, "https://archive.example.org/s/2", records[1].TitleURL)
}

func TestExtractor_ExtractDocument_AllKeysPresent(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(twoResults))
	require.NoError(t, err)

	records := extract.New(extract.Selectors{}).ExtractDocument(doc, pageURL)
	data, err := json.Marshal(records)
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	require.Len(t, generic, 2)
	for _, rec := range generic {
		for _, key := range []string{"title", "titleUrl", "imageUrl", "details"} {
			assert.Contains(t, rec, key)
		}
		assert.IsType(t, []any{}, rec["details"])
	}
}
