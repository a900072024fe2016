// internal/downloader/downloader.go
package downloader

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DownloadResult represents the result of a download operation
type DownloadResult struct {
	URL       string
	FilePath  string
	Size      int64
	Success   bool
	Error     error
	StartTime time.Time
	Duration  time.Duration
}

// DownloadOptions configures the download behavior
type DownloadOptions struct {
	OutputDir string
	Filename  string
}

// Downloader streams single files to disk
type Downloader struct {
	client    *http.Client
	userAgent string
	headers   http.Header
	logger    zerolog.Logger
}

// NewDownloader creates a new Downloader that shares client with the page fetcher
func NewDownloader(client *http.Client, userAgent string, headers http.Header, logger zerolog.Logger) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{
		client:    client,
		userAgent: userAgent,
		headers:   headers,
		logger:    logger,
	}
}

// Download downloads a single file with streaming I/O
func (d *Downloader) Download(ctx context.Context, fileURL string, opts DownloadOptions) *DownloadResult {
	result := &DownloadResult{
		URL:       fileURL,
		StartTime: time.Now(),
	}
	fail := func(err error) *DownloadResult {
		result.Error = err
		result.Duration = time.Since(result.StartTime)
		return result
	}

	if u, err := url.Parse(fileURL); err != nil || u.Host == "" {
		return fail(fmt.Errorf("invalid URL %q", fileURL))
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	filename := opts.Filename
	if filename == "" {
		filename = fileURL
	}
	filePath := filepath.Join(opts.OutputDir, sanitizeFilename(filename))
	result.FilePath = filePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	for key, values := range d.headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("bad status: %s", resp.Status))
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return fail(fmt.Errorf("failed to create file: %w", err))
	}

	bytesWritten, err := io.Copy(outFile, resp.Body)
	if cerr := outFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filePath)
		return fail(fmt.Errorf("failed to write file: %w", err))
	}

	result.Size = bytesWritten
	result.Success = true
	result.Duration = time.Since(result.StartTime)

	d.logger.Debug().
		Str("url", fileURL).
		Str("file", filePath).
		Int64("bytes", bytesWritten).
		Dur("duration", result.Duration).
		Msg("Download completed")

	return result
}

// sanitizeFilename prevents path traversal attacks
func sanitizeFilename(input string) string {
	// Extract filename from URL
	var queryHash string
	if u, err := url.Parse(input); err == nil && u.Host != "" {
		parts := strings.Split(u.Path, "/")
		input = parts[len(parts)-1]
		if u.RawQuery != "" {
			queryHash = "_" + hashString(u.RawQuery)
		}
	}

	input = strings.NewReplacer(
		"/", "_", "\\", "_", "..", "_", ":", "_", "*", "_",
		"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	).Replace(input)

	input = strings.TrimSpace(input)
	input = strings.Trim(input, ".")

	// Append query hash before extension
	if queryHash != "" {
		ext := filepath.Ext(input)
		input = strings.TrimSuffix(input, ext) + queryHash + ext
	}

	if input == "" {
		input = fmt.Sprintf("download_%d", time.Now().UnixNano())
	}
	if len(input) > 200 {
		input = input[:200]
	}

	return input
}

// hashString creates a short stable hash for unique filenames
func hashString(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}
