package output_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/fototeca/internal/utils/output"
	"github.com/law-makers/fototeca/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func sampleRecords() []models.PhotoRecord {
	param := "123"
	link := "https://asac.example.org/ava-ricerca.php?scheda=123"
	return []models.PhotoRecord{
		{
			Title:    "Città & Laguna",
			TitleURL: "https://asac.example.org/ava-ricerca.php?scheda=123&lang=it",
			ImageURL: "https://asac.example.org/thumbs/1.jpg",
			Details: []models.DetailEntry{
				{Definition: "Autore", Value: models.Linked{
					Text:         "Giacomelli, Mario",
					OriginalLink: "https://asac.example.org/ava-ricerca.php?scheda=123&lang=it",
					SchedaParam:  &param,
					SchedaLink:   &link,
				}},
				{Definition: "Soggetto", Value: models.List{"Arte", "Venezia"}},
				{Definition: "Data", Value: models.Scalar("1958")},
			},
		},
		{Details: []models.DetailEntry{}},
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.WriteJSON(&buf, sampleRecords()))

	out := buf.String()
	assert.Contains(t, out, `"title": "Città & Laguna"`)
	assert.Contains(t, out, `"originalLink": "https://asac.example.org/ava-ricerca.php?scheda=123&lang=it"`)
	assert.Contains(t, out, "\n  {\n    \"title\"")
	assert.NotContains(t, out, `\u0026`)

	var decoded []models.PhotoRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRecords(), decoded)
}

func TestWriteJSON_NilRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONSink_Emit(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "output")
	sink := output.NewJSONSink(dir)

	require.NoError(t, sink.Emit(context.Background(), 4, sampleRecords()))

	data, err := os.ReadFile(filepath.Join(dir, "page_4.json"))
	require.NoError(t, err)
	assert.Equal(t, sink.Path(4), filepath.Join(dir, "page_4.json"))

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	require.Len(t, generic, 2)
	assert.Equal(t, "Città & Laguna", generic[0]["title"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may remain")
}

func TestCSVSink_Emit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, output.NewCSVSink(dir).Emit(context.Background(), 1, sampleRecords()))

	f, err := os.Open(filepath.Join(dir, "page_1.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, output.CSVHeader, rows[0])
	assert.Equal(t, []string{"1", "Città & Laguna", "https://asac.example.org/ava-ricerca.php?scheda=123&lang=it",
		"https://asac.example.org/thumbs/1.jpg", "Autore", "Giacomelli, Mario",
		"https://asac.example.org/ava-ricerca.php?scheda=123&lang=it", "123",
		"https://asac.example.org/ava-ricerca.php?scheda=123"}, rows[1])
	assert.Equal(t, "Arte; Venezia", rows[2][5])
	assert.Equal(t, []string{"2", "", "", "", "", "", "", "", ""}, rows[4])
}

type failingSink struct{ calls *int }

func (f failingSink) Emit(context.Context, int, []models.PhotoRecord) error {
	*f.calls++
	return errors.New("disk full")
}

func TestMultiSink_RunsAll(t *testing.T) {
	t.Parallel()

	calls := 0
	dir := t.TempDir()
	sink := output.MultiSink{failingSink{&calls}, output.NewJSONSink(dir)}

	err := sink.Emit(context.Background(), 2, sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, calls)
	assert.FileExists(t, filepath.Join(dir, "page_2.json"))
}

func TestPrettyPrint(t *testing.T) {
	t.Parallel()

	doc, err := html.Parse(strings.NewReader(`<div class="risultato"><img src="a.jpg"><h3><a href="x">T</a></h3></div>`))
	require.NoError(t, err)

	out := output.PrettyPrint(doc)
	assert.Contains(t, out, `<div class="risultato">`)
	assert.Contains(t, out, `<img src="a.jpg">`)
	assert.NotContains(t, out, "</img>")
	assert.Contains(t, out, "T\n")
}
