package extract

import "net/url"

// SchedaKey is the query parameter that identifies a record's detail sheet
const SchedaKey = "scheda"

// Canonicalize pulls the first scheda parameter out of an absolute link and
// rebuilds scheme://host/path?scheda=<param>, dropping every other query
// parameter. The link's own path is kept as-is.
//
// param is nil when the link has no scheda parameter; canonical is nil unless
// param is non-empty.
func Canonicalize(link string) (param *string, canonical *string) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, nil
	}

	// ParseQuery keeps the well-formed pairs even when it reports an error
	query, _ := url.ParseQuery(u.RawQuery)
	values, ok := query[SchedaKey]
	if !ok || len(values) == 0 {
		return nil, nil
	}

	p := values[0]
	if p == "" {
		return &p, nil
	}

	canon := url.URL{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
		RawPath:  u.RawPath,
		RawQuery: url.Values{SchedaKey: {p}}.Encode(),
	}
	s := canon.String()
	return &p, &s
}
