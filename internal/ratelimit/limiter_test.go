package ratelimit

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func TestHostLimiter_PacesPages(t *testing.T) {
	lim := NewHostLimiter(20, 1)

	start := time.Now()
	for page := 1; page <= 3; page++ {
		if err := lim.Wait(context.Background(), "https://asacdati.example/f/sem-ricerca.php?cerca=1&p="+strconv.Itoa(page)); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	// first token is immediate, the next two wait ~50ms each
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("Expected pacing, finished in %v", elapsed)
	}
}

func TestHostLimiter_SeparateHosts(t *testing.T) {
	lim := NewHostLimiter(0.5, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// each host gets its own first token
	for _, u := range []string{"https://a.example/x", "https://b.example/x", "https://c.example:8443/x"} {
		if err := lim.Wait(ctx, u); err != nil {
			t.Fatalf("Wait(%s) failed: %v", u, err)
		}
	}
}

func TestHostLimiter_Unlimited(t *testing.T) {
	lim := NewHostLimiter(0, 0)
	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := lim.Wait(context.Background(), "https://example.org/"); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected no pacing, took %v", elapsed)
	}
}

func TestHostLimiter_Cancelled(t *testing.T) {
	lim := NewHostLimiter(0.1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := lim.Wait(ctx, "https://example.org/"); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}
	cancel()
	if err := lim.Wait(ctx, "https://example.org/"); err == nil {
		t.Error("Expected error on cancelled context")
	}
}

func TestHostOf(t *testing.T) {
	tests := map[string]string{
		"https://Example.org:8443/a": "example.org",
		"http://example.org/p?x=1":   "example.org",
		"::bad":                      "",
		"relative/path":              "",
	}
	for in, want := range tests {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
