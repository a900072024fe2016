package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PhotoRecord represents one catalog entry found on a search-results page
type PhotoRecord struct {
	Title    string        `json:"title"`
	TitleURL string        `json:"titleUrl"`
	ImageURL string        `json:"imageUrl"`
	Details  []DetailEntry `json:"details"`
}

// DetailEntry is one labeled attribute row of a record
type DetailEntry struct {
	Definition string
	Value      DetailValue
}

// DetailValue is the value side of a detail row. It is one of Scalar, List or Linked.
type DetailValue interface {
	detailValue()
}

// Scalar is a plain text value
type Scalar string

// List is a plain value split into pieces (used for the Soggetto row)
type List []string

// Linked is a value cell that carried a link
type Linked struct {
	Text         string
	OriginalLink string
	// SchedaParam is nil when the link has no scheda query parameter
	SchedaParam *string
	// SchedaLink is set only when SchedaParam is non-empty
	SchedaLink *string
}

func (Scalar) detailValue() {}
func (List) detailValue()   {}
func (Linked) detailValue() {}

type plainEntryJSON struct {
	Definition string `json:"definition"`
	Value      any    `json:"value"`
}

type linkedEntryJSON struct {
	Definition   string  `json:"definition"`
	Value        string  `json:"value"`
	OriginalLink string  `json:"originalLink"`
	SchedaParam  *string `json:"schedaParam"`
	SchedaLink   *string `json:"schedaLink"`
}

// MarshalJSON writes the flat shape consumers of the page files expect:
// plain rows carry definition/value, linked rows add originalLink, schedaParam and schedaLink.
func (d DetailEntry) MarshalJSON() ([]byte, error) {
	switch v := d.Value.(type) {
	case Linked:
		return marshalRaw(linkedEntryJSON{
			Definition:   d.Definition,
			Value:        v.Text,
			OriginalLink: v.OriginalLink,
			SchedaParam:  v.SchedaParam,
			SchedaLink:   v.SchedaLink,
		})
	case List:
		items := []string(v)
		if items == nil {
			items = []string{}
		}
		return marshalRaw(plainEntryJSON{Definition: d.Definition, Value: items})
	case Scalar:
		return marshalRaw(plainEntryJSON{Definition: d.Definition, Value: string(v)})
	case nil:
		return marshalRaw(plainEntryJSON{Definition: d.Definition, Value: ""})
	default:
		return nil, fmt.Errorf("unsupported detail value %T", d.Value)
	}
}

// UnmarshalJSON restores the tagged value from the flat shape
func (d *DetailEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Definition   string          `json:"definition"`
		Value        json.RawMessage `json:"value"`
		OriginalLink *string         `json:"originalLink"`
		SchedaParam  *string         `json:"schedaParam"`
		SchedaLink   *string         `json:"schedaLink"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Definition = raw.Definition

	if raw.OriginalLink != nil {
		var text string
		if err := json.Unmarshal(raw.Value, &text); err != nil {
			return fmt.Errorf("linked value: %w", err)
		}
		d.Value = Linked{
			Text:         text,
			OriginalLink: *raw.OriginalLink,
			SchedaParam:  raw.SchedaParam,
			SchedaLink:   raw.SchedaLink,
		}
		return nil
	}

	trimmed := bytes.TrimSpace(raw.Value)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("list value: %w", err)
		}
		d.Value = List(items)
		return nil
	}

	var text string
	if len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("scalar value: %w", err)
		}
	}
	d.Value = Scalar(text)
	return nil
}

// Strings returns the value as display strings regardless of its variant
func (d DetailEntry) Strings() []string {
	switch v := d.Value.(type) {
	case Linked:
		return []string{v.Text}
	case List:
		return []string(v)
	case Scalar:
		return []string{string(v)}
	}
	return nil
}

// marshalRaw encodes without HTML escaping so query strings keep their literal '&'
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FetchMode selects the transport used to retrieve pages
type FetchMode string

const (
	ModeHTTP    FetchMode = "http"
	ModeBrowser FetchMode = "browser"
)

// OutputFormat selects the per-page artifact format
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)
