package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().String("log-file", "", "Append JSON logs to this file (e.g. scraping.log)")
	cmd.PersistentFlags().String("config", "", "Path to YAML configuration file (optional)")
	cmd.PersistentFlags().String("base-url", DefaultBaseURL, "Catalog base URL")
	cmd.PersistentFlags().String("proxy", "", "HTTP/SOCKS5 proxies, comma separated (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "30s", "Set hard timeout for requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArrayP("header", "H", nil, "Custom request header (e.g. -H \"Cookie: a=b\")")
}

// RegisterCrawlFlags registers the flags specific to the crawl command
func RegisterCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", DefaultOutputDir, "Directory receiving page files")
	cmd.Flags().StringP("format", "f", string(DefaultFormat), "Page file format: json or csv")
	cmd.Flags().StringP("mode", "m", string(DefaultMode), "Fetch mode: http or browser")
	cmd.Flags().String("chrome-path", "", "Chrome/Chromium executable for browser mode")
	cmd.Flags().Float64("rate", DefaultRateLimitRPS, "Requests per second per host (0 disables)")
	cmd.Flags().Int("burst", DefaultRateLimitBurst, "Rate limiter burst size")
	cmd.Flags().Bool("download-images", false, "Download record thumbnails")
	cmd.Flags().String("images-dir", DefaultImagesDir, "Directory receiving thumbnails")
	cmd.Flags().Int("workers", DefaultDownloadWorkers, "Concurrent thumbnail downloads")
}
