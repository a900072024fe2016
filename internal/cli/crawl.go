// internal/cli/crawl.go
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/law-makers/fototeca/internal/config"
	"github.com/law-makers/fototeca/internal/crawl"
	"github.com/law-makers/fototeca/internal/ui"
	"github.com/spf13/cobra"
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl <start> <end>",
	Short: "Scrape result pages start..end into per-page files",
	Long: `Fetches every result page from start to end (inclusive) in ascending order,
extracts the photo records and writes page_<n>.json (or .csv) into the output
directory.

A page that cannot be fetched, or that holds no records, produces no file.
Failures are logged and the run moves on to the next page.`,
	Example: `  # Scrape the first ten pages into ./output
  fototeca crawl 1 10

  # Write CSV instead of JSON, into another directory
  fototeca crawl 5 8 --format=csv --output=./csv

  # Also download the thumbnails of every record
  fototeca crawl 1 3 --download-images --workers=4

  # Keep a JSON log next to the results
  fototeca crawl 1 100 --log-file=scraping.log

  # Render pages in headless Chrome
  fototeca crawl 1 2 --mode=browser`,
	Args: pageRangeArgs,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	config.RegisterCrawlFlags(crawlCmd)
}

// pageRangeArgs rejects anything but two positive integers with start <= end
func pageRangeArgs(cmd *cobra.Command, args []string) error {
	_, _, err := parsePageRange(args)
	return err
}

func parsePageRange(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected <start> <end>, got %d argument(s)", len(args))
	}
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("start page %q is not an integer", args[0])
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("end page %q is not an integer", args[1])
	}
	if start < 1 {
		return 0, 0, fmt.Errorf("start page must be >= 1, got %d", start)
	}
	if end < start {
		return 0, 0, fmt.Errorf("end page %d is before start page %d", end, start)
	}
	return start, end, nil
}

func runCrawl(cmd *cobra.Command, args []string) error {
	start, end, err := parsePageRange(args)
	if err != nil {
		return err
	}
	// arguments are valid; from here on errors are not usage errors
	cmd.SilenceUsage = true

	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	var extra []crawl.Reporter
	if a.ShowProgress {
		extra = append(extra, newProgressReporter(os.Stderr))
	}

	sum, err := a.Driver(extra...).Run(cmd.Context(), start, end)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, sum, a.Config.OutputDir)
	return nil
}

// printSummary writes the end-of-run table
func printSummary(w io.Writer, sum crawl.Summary, outputDir string) {
	failed := strconv.Itoa(sum.Failed)
	if sum.Failed > 0 {
		failed = ui.Error(failed)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("%s", ui.Bold(fmt.Sprintf("Pages %d..%d", sum.Start, sum.End)))
	t.AppendRows([]table.Row{
		{"Attempted", sum.Attempted},
		{"Written", ui.Success(strconv.Itoa(sum.Emitted))},
		{"Empty", ui.Info(strconv.Itoa(sum.Skipped))},
		{"Failed", failed},
		{"Records", sum.Records},
		{"Duration", sum.Duration.Round(time.Millisecond)},
		{"Output", outputDir},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
