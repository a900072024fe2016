package config

import (
	"time"

	"github.com/law-makers/fototeca/internal/engine/static"
	"github.com/law-makers/fototeca/pkg/models"
)

// Default constants for application configuration
const (
	DefaultLogLevel        = "info"
	DefaultJSONLog         = false
	DefaultBaseURL         = "https://asacdati.labiennale.org/it/fondi/fototeca"
	DefaultOutputDir       = "output"
	DefaultFormat          = models.FormatJSON
	DefaultMode            = models.ModeHTTP
	DefaultUserAgent       = static.DefaultUserAgent
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultRateLimitRPS    = 2.0
	DefaultRateLimitBurst  = 1
	DefaultImagesDir       = "output/images"
	DefaultDownloadWorkers = 4
	MaxDownloadWorkers     = 16
)
