package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Lookup is the outcome of a first-match query: either a found element or absent.
// Every accessor on an absent Lookup returns the zero value, so callers never nil-check.
type Lookup struct {
	sel *goquery.Selection
}

// First returns the first element under scope matching selector
func First(scope *goquery.Selection, selector string) Lookup {
	if scope == nil || selector == "" {
		return Lookup{}
	}
	match := scope.Find(selector).First()
	if match.Length() == 0 {
		return Lookup{}
	}
	return Lookup{sel: match}
}

// Found reports whether the lookup matched an element
func (l Lookup) Found() bool {
	return l.sel != nil
}

// Text returns the element's text with surrounding whitespace removed, or "" when absent
func (l Lookup) Text() string {
	if l.sel == nil {
		return ""
	}
	return strings.TrimSpace(l.sel.Text())
}

// Attr returns the trimmed attribute value and whether the element carries it
func (l Lookup) Attr(name string) (string, bool) {
	if l.sel == nil {
		return "", false
	}
	v, ok := l.sel.Attr(name)
	return strings.TrimSpace(v), ok
}

// Selection exposes the matched element as a scope for nested lookups.
// An absent lookup yields nil, which First treats as an empty scope.
func (l Lookup) Selection() *goquery.Selection {
	return l.sel
}
