package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestDetailEntry_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		entry DetailEntry
		want  string
	}{
		{
			name:  "scalar",
			entry: DetailEntry{Definition: "Data", Value: Scalar("1958")},
			want:  `{"definition":"Data","value":"1958"}`,
		},
		{
			name:  "list",
			entry: DetailEntry{Definition: "Soggetto", Value: List{"Arte", "Città"}},
			want:  `{"definition":"Soggetto","value":["Arte","Città"]}`,
		},
		{
			name:  "nil list",
			entry: DetailEntry{Definition: "Soggetto", Value: List(nil)},
			want:  `{"definition":"Soggetto","value":[]}`,
		},
		{
			name:  "missing value",
			entry: DetailEntry{Definition: "Note"},
			want:  `{"definition":"Note","value":""}`,
		},
		{
			name: "linked with scheda",
			entry: DetailEntry{Definition: "Autore", Value: Linked{
				Text:         "Giacomelli",
				OriginalLink: "https://a.example/x.php?scheda=7&lang=it",
				SchedaParam:  ptr("7"),
				SchedaLink:   ptr("https://a.example/x.php?scheda=7"),
			}},
			want: `{"definition":"Autore","value":"Giacomelli","originalLink":"https://a.example/x.php?scheda=7&lang=it","schedaParam":"7","schedaLink":"https://a.example/x.php?scheda=7"}`,
		},
		{
			name: "linked without scheda",
			entry: DetailEntry{Definition: "Fondo", Value: Linked{
				Text:         "Fototeca",
				OriginalLink: "https://a.example/f.php?id=4",
			}},
			want: `{"definition":"Fondo","value":"Fototeca","originalLink":"https://a.example/f.php?id=4","schedaParam":null,"schedaLink":null}`,
		},
		{
			name: "linked with empty scheda",
			entry: DetailEntry{Definition: "Fondo", Value: Linked{
				Text:         "Fototeca",
				OriginalLink: "https://a.example/f.php?scheda=",
				SchedaParam:  ptr(""),
			}},
			want: `{"definition":"Fondo","value":"Fototeca","originalLink":"https://a.example/f.php?scheda=","schedaParam":"","schedaLink":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entry.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDetailEntry_UnmarshalJSON(t *testing.T) {
	in := `[
  {"definition":"Data","value":"1958"},
  {"definition":"Soggetto","value":["Arte","Venezia"]},
  {"definition":"Autore","value":"Giacomelli","originalLink":"https://a.example/x.php?scheda=7","schedaParam":"7","schedaLink":"https://a.example/x.php?scheda=7"},
  {"definition":"Fondo","value":"Fototeca","originalLink":"https://a.example/f.php","schedaParam":null,"schedaLink":null}
]`

	var entries []DetailEntry
	require.NoError(t, json.Unmarshal([]byte(in), &entries))
	require.Len(t, entries, 4)

	assert.Equal(t, Scalar("1958"), entries[0].Value)
	assert.Equal(t, List{"Arte", "Venezia"}, entries[1].Value)
	assert.Equal(t, Linked{
		Text:         "Giacomelli",
		OriginalLink: "https://a.example/x.php?scheda=7",
		SchedaParam:  ptr("7"),
		SchedaLink:   ptr("https://a.example/x.php?scheda=7"),
	}, entries[2].Value)

	fondo, ok := entries[3].Value.(Linked)
	require.True(t, ok)
	assert.Nil(t, fondo.SchedaParam)
	assert.Nil(t, fondo.SchedaLink)
}

func TestDetailEntry_UnmarshalJSON_WrongShape(t *testing.T) {
	var e DetailEntry
	assert.Error(t, json.Unmarshal([]byte(`{"definition":"x","value":[1,2]}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`{"definition":"x","value":3,"originalLink":"u"}`), &e))
}

func TestDetailEntry_Strings(t *testing.T) {
	assert.Equal(t, []string{"a"}, DetailEntry{Value: Scalar("a")}.Strings())
	assert.Equal(t, []string{"a", "b"}, DetailEntry{Value: List{"a", "b"}}.Strings())
	assert.Equal(t, []string{"t"}, DetailEntry{Value: Linked{Text: "t"}}.Strings())
	assert.Nil(t, DetailEntry{}.Strings())
}

func TestPhotoRecord_MarshalJSON(t *testing.T) {
	rec := PhotoRecord{
		Title:    "Padiglione",
		TitleURL: "https://a.example/x.php?scheda=1&lang=it",
		Details:  []DetailEntry{},
	}
	got, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Padiglione","titleUrl":"https://a.example/x.php?scheda=1&lang=it","imageUrl":"","details":[]}`, string(got))
}
