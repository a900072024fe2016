// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/law-makers/fototeca/internal/config"
	"github.com/law-makers/fototeca/internal/crawl"
	"github.com/law-makers/fototeca/internal/downloader"
	"github.com/law-makers/fototeca/internal/engine"
	"github.com/law-makers/fototeca/internal/engine/dynamic"
	"github.com/law-makers/fototeca/internal/engine/static"
	"github.com/law-makers/fototeca/internal/extract"
	"github.com/law-makers/fototeca/internal/proxy"
	"github.com/law-makers/fototeca/internal/ratelimit"
	"github.com/law-makers/fototeca/internal/utils/output"
	"github.com/law-makers/fototeca/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.Limiter
	Proxies     *proxy.Pool
	HTTPClient  *http.Client
	Fetcher     engine.Fetcher
	Extractor   *extract.Extractor
	Sink        crawl.Sink

	// ShowProgress is set when the console carries no per-page info lines,
	// leaving stderr to the progress bar.
	ShowProgress bool

	logFile   *os.File
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging (console, JSON lines, optional log file)
//   - Creates the proxy pool and the per-host rate limiter
//   - Initializes the HTTP client with proper timeouts
//   - Selects the page fetcher for the configured mode
//   - Builds the extractor and the output sinks
//
// No browser is launched here; browser mode starts Chrome on the first fetch.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger, logFile, showProgress, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Str("log_file", cfg.LogFile).
		Msg("Logger initialized")

	proxies := proxy.New(cfg.Proxies)
	rateLimiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Int("proxies", proxies.Len()).
		Msg("Rate limiter initialized")

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if proxies.Len() > 0 {
		transport.Proxy = proxy.FromRequest
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Msg("HTTP client initialized")

	headers := cfg.RequestHeaders()

	var fetcher engine.Fetcher
	switch cfg.Mode {
	case models.ModeBrowser:
		var browserProxy string
		if len(cfg.Proxies) > 0 {
			browserProxy = cfg.Proxies[0]
		}
		if len(headers) > 0 {
			logger.Warn().Msg("Custom headers are not sent in browser mode")
		}
		fetcher = dynamic.New(rateLimiter, dynamic.Options{
			ChromePath: cfg.ChromePath,
			UserAgent:  cfg.UserAgent,
			Proxy:      browserProxy,
			Timeout:    cfg.HTTPTimeout,
			Logger:     logger,
		})
	default:
		fetcher = static.New(httpClient, rateLimiter, static.Options{
			UserAgent: cfg.UserAgent,
			Headers:   headers,
			Proxies:   proxies,
			Logger:    logger,
		})
	}
	logger.Debug().Str("fetcher", fetcher.Name()).Msg("Fetcher initialized")

	sinks := output.MultiSink{pageSink(cfg)}
	if cfg.DownloadImages {
		dl := downloader.NewDownloader(httpClient, cfg.UserAgent, headers, logger)
		pool := downloader.NewWorkerPool(dl, cfg.DownloadWorkers)
		sinks = append(sinks, downloader.NewThumbnailSink(pool, cfg.ImagesDir, logger))
	}

	app := &Application{
		Config:       cfg,
		Logger:       &logger,
		RateLimiter:  rateLimiter,
		Proxies:      proxies,
		HTTPClient:   httpClient,
		Fetcher:      fetcher,
		Extractor:    extract.New(cfg.Selectors),
		Sink:         sinks,
		ShowProgress: showProgress,
		logFile:      logFile,
		startTime:    time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

// Driver returns a crawl driver over the application's components. Page
// notices go to the application logger and then to extra, in order.
func (a *Application) Driver(extra ...crawl.Reporter) *crawl.Driver {
	reporter := crawl.MultiReporter{crawl.NewLogReporter(*a.Logger)}
	reporter = append(reporter, extra...)
	return crawl.NewDriver(a.Config.BaseURL, a.Fetcher, a.Extractor, a.Sink, reporter)
}

// Close gracefully shuts down the application and all its resources.
//
// It performs the following cleanup steps in order:
//   - Closes the headless browser, if one was started
//   - Releases idle HTTP connections
//   - Closes the log file
//
// Any errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	if c, ok := a.Fetcher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing fetcher")
		}
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
		a.logFile = nil
	}
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

func pageSink(cfg *config.Config) crawl.Sink {
	if cfg.Format == models.FormatCSV {
		return output.NewCSVSink(cfg.OutputDir)
	}
	return output.NewJSONSink(cfg.OutputDir)
}

// newLogger builds the application logger. The console gets human-readable
// lines (or JSON with --json); --log-file appends JSON lines at the configured
// level. At the default level the console only shows warnings so the progress
// bar stays readable.
func newLogger(cfg *config.Config) (zerolog.Logger, *os.File, bool, error) {
	level := ParseLevel(cfg.LogLevel)

	consoleLevel := level
	showProgress := !cfg.JSONLog && level == zerolog.InfoLevel
	if showProgress {
		consoleLevel = zerolog.WarnLevel
	}

	var console io.Writer
	if cfg.JSONLog {
		console = os.Stderr
	} else {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: console},
			Level:  consoleLevel,
		},
	}

	var logFile *os.File
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, false, fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: f},
			Level:  level,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	// keep the package-level logger in step for code outside the app graph
	log.Logger = logger

	return logger, logFile, showProgress, nil
}

// ParseLevel maps a configured level name to a zerolog level, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
