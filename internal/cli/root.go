// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/fototeca/internal/app"
	"github.com/law-makers/fototeca/internal/config"
	"github.com/law-makers/fototeca/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fototeca",
	Short: "Scrape the photo archive search results into per-page record files",
	Long: `Fototeca walks a range of result pages of the photo archive catalog,
extracts every photo record (title, links, thumbnail and the labeled detail
rows) and writes one file per page.

Pages that fail to load or hold no results are logged and skipped; the run
always continues with the next page.`,
	Version:       "0.1.0",
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		// PersistentPostRun is skipped when a command fails
		closeApp(cmd)
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		appCtx, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		SetApp(cmd, appCtx)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeApp(cmd)
	}
}

func closeApp(cmd *cobra.Command) {
	appCtx := GetAppFromCmd(cmd)
	if appCtx == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := appCtx.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Error during shutdown")
	}
	SetApp(cmd, nil)
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for Fototeca")
	rootCmd.Flags().Bool("version", false, "Version for Fototeca")
}

func init() {
	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Set custom help function
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)
}
