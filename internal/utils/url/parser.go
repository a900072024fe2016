package urlutil

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchPath is the catalog search endpoint, relative to the site base
const SearchPath = "/sem-ricerca.php?cerca=1&p="

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// ResolveURL resolves a possibly-relative href against a base URL and returns a string.
// An unparseable href or base yields the href unchanged.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return u.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// PageURL builds the search-results URL for a page number under siteBase
func PageURL(siteBase string, page int) string {
	return strings.TrimRight(siteBase, "/") + SearchPath + strconv.Itoa(page)
}
