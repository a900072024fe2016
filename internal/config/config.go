package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/law-makers/fototeca/internal/extract"
	"github.com/law-makers/fototeca/internal/utils/headers"
	"github.com/law-makers/fototeca/pkg/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`
	LogFile  string `yaml:"log_file"`

	// Catalog
	BaseURL   string            `yaml:"base_url"`
	Selectors extract.Selectors `yaml:"selectors"`

	// Output
	OutputDir string              `yaml:"output_dir"`
	Format    models.OutputFormat `yaml:"format"`

	// HTTP/Scraping
	HTTPTimeout time.Duration    `yaml:"timeout"`
	UserAgent   string           `yaml:"user_agent"`
	Proxies     []string         `yaml:"proxies"`
	Headers     []string         `yaml:"headers"`
	Mode        models.FetchMode `yaml:"mode"`
	ChromePath  string           `yaml:"chrome_path"`

	// Rate Limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// Thumbnails
	DownloadImages  bool   `yaml:"download_images"`
	ImagesDir       string `yaml:"images_dir"`
	DownloadWorkers int    `yaml:"download_workers"`
}

// Default returns a Config populated with the built-in defaults
func Default() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		BaseURL:         DefaultBaseURL,
		Selectors:       extract.DefaultSelectors(),
		OutputDir:       DefaultOutputDir,
		Format:          DefaultFormat,
		HTTPTimeout:     DefaultHTTPTimeout,
		UserAgent:       DefaultUserAgent,
		Mode:            DefaultMode,
		RateLimitRPS:    DefaultRateLimitRPS,
		RateLimitBurst:  DefaultRateLimitBurst,
		ImagesDir:       DefaultImagesDir,
		DownloadWorkers: DefaultDownloadWorkers,
	}
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if path := flagString(cmd, "config"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.applyFlags(cmd); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFile overlays the YAML document at path. Keys absent from the file keep their current value.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FOTOTECA_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("FOTOTECA_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("FOTOTECA_PROXY"); v != "" {
		c.Proxies = splitList(v)
	}
	if v := os.Getenv("FOTOTECA_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("FOTOTECA_CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
}

// applyFlags copies every flag the user actually set. Unchanged flags never
// override the file or environment.
func (c *Config) applyFlags(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if changed(cmd, "base-url") {
		c.BaseURL = flagString(cmd, "base-url")
	}
	if changed(cmd, "output") {
		c.OutputDir = flagString(cmd, "output")
	}
	if changed(cmd, "format") {
		c.Format = models.OutputFormat(strings.ToLower(flagString(cmd, "format")))
	}
	if changed(cmd, "mode") {
		c.Mode = models.FetchMode(strings.ToLower(flagString(cmd, "mode")))
	}
	if changed(cmd, "user-agent") {
		c.UserAgent = flagString(cmd, "user-agent")
	}
	if changed(cmd, "proxy") {
		c.Proxies = splitList(flagString(cmd, "proxy"))
	}
	if changed(cmd, "chrome-path") {
		c.ChromePath = flagString(cmd, "chrome-path")
	}
	if changed(cmd, "log-file") {
		c.LogFile = flagString(cmd, "log-file")
	}
	if changed(cmd, "images-dir") {
		c.ImagesDir = flagString(cmd, "images-dir")
	}
	if changed(cmd, "timeout") {
		d, err := time.ParseDuration(flagString(cmd, "timeout"))
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	if changed(cmd, "rate") {
		v, err := strconv.ParseFloat(flagString(cmd, "rate"), 64)
		if err != nil {
			return fmt.Errorf("invalid --rate: %w", err)
		}
		c.RateLimitRPS = v
	}
	if changed(cmd, "burst") {
		v, err := strconv.Atoi(flagString(cmd, "burst"))
		if err != nil {
			return fmt.Errorf("invalid --burst: %w", err)
		}
		c.RateLimitBurst = v
	}
	if changed(cmd, "workers") {
		v, err := strconv.Atoi(flagString(cmd, "workers"))
		if err != nil {
			return fmt.Errorf("invalid --workers: %w", err)
		}
		c.DownloadWorkers = v
	}
	if changed(cmd, "header") {
		if hs, err := cmd.Flags().GetStringArray("header"); err == nil {
			c.Headers = append(c.Headers, hs...)
		}
	}
	if flagBool(cmd, "download-images") {
		c.DownloadImages = true
	}
	if flagBool(cmd, "json") {
		c.JSONLog = true
	}
	if flagBool(cmd, "verbose") {
		c.LogLevel = "debug"
	}
	if flagBool(cmd, "quiet") {
		c.LogLevel = "error"
	}
	return nil
}

// RequestHeaders parses the configured "Key: Value" headers
func (c *Config) RequestHeaders() http.Header {
	return headers.ParseHeaders(c.Headers)
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagBool(cmd *cobra.Command, name string) bool {
	return flagString(cmd, name) == "true"
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
