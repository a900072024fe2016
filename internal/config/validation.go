package config

import (
	"fmt"
	"strings"

	urlutil "github.com/law-makers/fototeca/internal/utils/url"
	"github.com/law-makers/fototeca/pkg/models"
)

func validate(c *Config) error {
	if err := urlutil.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}

	switch c.Format {
	case models.FormatJSON, models.FormatCSV:
	default:
		return fmt.Errorf("unknown output format %q (want json or csv)", c.Format)
	}

	switch c.Mode {
	case models.ModeHTTP, models.ModeBrowser:
	default:
		return fmt.Errorf("unknown fetch mode %q (want http or browser)", c.Mode)
	}

	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must be >= 0")
	}
	if c.DownloadImages && c.ImagesDir == "" {
		return fmt.Errorf("images directory must not be empty when downloading images")
	}
	if c.DownloadWorkers <= 0 || c.DownloadWorkers > MaxDownloadWorkers {
		return fmt.Errorf("download workers must be between 1 and %d", MaxDownloadWorkers)
	}
	for _, p := range c.Proxies {
		if err := urlutil.ValidateURL(p); err != nil && !strings.HasPrefix(p, "socks5://") {
			return fmt.Errorf("proxy %q: %w", p, err)
		}
	}
	return nil
}
