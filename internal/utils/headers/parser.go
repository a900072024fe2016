package headers

import (
	"net/http"
	"strings"
)

// ParseHeaders converts "Key: Value" strings into request headers.
// Entries without a colon or with an empty key are ignored.
func ParseHeaders(h []string) http.Header {
	out := make(http.Header)
	for _, hdr := range h {
		name, value, ok := strings.Cut(hdr, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		out.Add(name, strings.TrimSpace(value))
	}
	return out
}
