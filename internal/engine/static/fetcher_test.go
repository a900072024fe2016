// internal/engine/static/fetcher_test.go
package static

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/law-makers/fototeca/internal/engine"
	"github.com/law-makers/fototeca/internal/ratelimit"
	"github.com/law-makers/fototeca/internal/utils/headers"
	"github.com/rs/zerolog"
)

func newTestFetcher(opts Options) *Fetcher {
	opts.Logger = zerolog.Nop()
	return New(&http.Client{Timeout: 5 * time.Second}, ratelimit.NewHostLimiter(0, 1), opts)
}

func TestFetcher_Fetch_BasicHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><div class="risultato">Città</div></body></html>`))
	}))
	defer server.Close()

	body, err := newTestFetcher(Options{}).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != `<html><body><div class="risultato">Città</div></body></html>` {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetcher_Fetch_DecodesLatin1(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Città" with à encoded as 0xE0
		w.Write([]byte("<p>Citt\xe0</p>"))
	}))
	defer server.Close()

	body, err := newTestFetcher(Options{}).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "<p>Città</p>" {
		t.Errorf("Expected UTF-8 decoded body, got %q", body)
	}
}

func TestFetcher_Fetch_StatusFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestFetcher(Options{}).Fetch(context.Background(), server.URL)
	if !errors.Is(err, engine.ErrFetchFailed) {
		t.Fatalf("Expected ErrFetchFailed, got %v", err)
	}
	if engine.CodeOf(err) != engine.ErrCodeHTTPStatus {
		t.Errorf("Expected HTTP_STATUS code, got %s", engine.CodeOf(err))
	}
}

func TestFetcher_Fetch_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFetcher(Options{}).Fetch(context.Background(), url)
	if !errors.Is(err, engine.ErrFetchFailed) {
		t.Fatalf("Expected ErrFetchFailed, got %v", err)
	}
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	f := New(&http.Client{Timeout: 50 * time.Millisecond}, nil, Options{Logger: zerolog.Nop()})
	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, engine.ErrFetchFailed) {
		t.Fatalf("Expected ErrFetchFailed, got %v", err)
	}
	if engine.CodeOf(err) != engine.ErrCodeTimeout {
		t.Errorf("Expected TIMEOUT code, got %s", engine.CodeOf(err))
	}
}

func TestFetcher_Fetch_Headers(t *testing.T) {
	var gotUA, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Custom-Header")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(Options{
		UserAgent: "TestFetcher/1.0",
		Headers:   headers.ParseHeaders([]string{"X-Custom-Header: TestValue"}),
	})
	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotUA != "TestFetcher/1.0" {
		t.Errorf("Expected user agent 'TestFetcher/1.0', got '%s'", gotUA)
	}
	if gotCustom != "TestValue" {
		t.Errorf("Expected custom header 'TestValue', got '%s'", gotCustom)
	}
}

func TestFetcher_Name(t *testing.T) {
	if name := newTestFetcher(Options{}).Name(); name != "StaticFetcher" {
		t.Errorf("Expected name 'StaticFetcher', got '%s'", name)
	}
}
