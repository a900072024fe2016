package dynamic

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
)

func TestFindChrome_Explicit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bit check is unix only")
	}

	dir := t.TempDir()
	exe := filepath.Join(dir, "chrome")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write fake chrome: %v", err)
	}

	if got := FindChrome(exe, zerolog.Nop()); got != exe {
		t.Errorf("Expected %s, got %s", exe, got)
	}
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()
	if isExecutable(dir) {
		t.Error("Directory must not be executable")
	}
	if isExecutable(filepath.Join(dir, "missing")) {
		t.Error("Missing file must not be executable")
	}
}

func TestFetcher_CloseWithoutBrowser(t *testing.T) {
	f := New(nil, Options{Logger: zerolog.Nop()})
	if f.Name() != "BrowserFetcher" {
		t.Errorf("Unexpected name %s", f.Name())
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
