package output

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/law-makers/fototeca/pkg/models"
)

// CSVHeader lists the columns of a page CSV file
var CSVHeader = []string{
	"record", "title", "titleUrl", "imageUrl",
	"definition", "value", "originalLink", "schedaParam", "schedaLink",
}

// ListSeparator joins list values inside a single CSV cell
const ListSeparator = "; "

// WriteCSV writes one row per detail entry. A record without details still
// gets one row so it is not lost.
func WriteCSV(w io.Writer, records []models.PhotoRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}

	for i, rec := range records {
		base := []string{strconv.Itoa(i + 1), rec.Title, rec.TitleURL, rec.ImageURL}

		if len(rec.Details) == 0 {
			if err := writer.Write(append(base, "", "", "", "", "")); err != nil {
				return err
			}
			continue
		}

		for _, d := range rec.Details {
			row := append(append([]string{}, base...), d.Definition, strings.Join(d.Strings(), ListSeparator))
			if linked, ok := d.Value.(models.Linked); ok {
				row = append(row, linked.OriginalLink, deref(linked.SchedaParam), deref(linked.SchedaLink))
			} else {
				row = append(row, "", "", "")
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVSink writes one page_<n>.csv file per emitted page into a directory
type CSVSink struct {
	dir string
}

// NewCSVSink creates a CSVSink writing under dir
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// Emit writes the page file, replacing any previous one
func (s *CSVSink) Emit(_ context.Context, page int, records []models.PhotoRecord) error {
	return writeFile(s.dir, PageFileName(page, "csv"), func(w io.Writer) error {
		return WriteCSV(w, records)
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
