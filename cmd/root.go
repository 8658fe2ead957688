// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"pelisplus/internal/config"
	"pelisplus/internal/httputil"
	"pelisplus/internal/logging"
	"pelisplus/internal/prefs"
	"pelisplus/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagJSON    bool
	flagDebug   bool
	flagBase    string
	flagWorkers int
	flagPlayer  string
)

var (
	// cfg holds the loaded configuration (merged: defaults < config file < flags).
	cfg    *config.Config
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "pelisplus [query]",
	Short: "Browse and stream PelisPlusHD from the terminal",
	Long: `pelisplus lists, searches and resolves PelisPlusHD titles into playable
streams, then plays them with mpv/vlc or downloads them with ffmpeg.

Without a subcommand it searches for the query, lets you pick a title and an
episode, and plays the best video for your stored preferences.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              browseRun,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pelisplus", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagBase, "base", "", "Site base URL (default "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Option pages resolved concurrently (1-16)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")

	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagBase != "" {
		cfg.BaseURL = flagBase
	}
	if flagWorkers != 0 {
		cfg.Workers = flagWorkers
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(cfg.Debug)
	logger.Debug("config loaded", "base", cfg.BaseURL, "workers", cfg.Workers, "player", cfg.Player)
	return nil
}

// newSource builds the catalog source from the loaded configuration.
func newSource() *provider.PelisPlusHD {
	return provider.New(provider.Options{
		BaseURL:   cfg.BaseURL,
		Client:    httputil.NewClient(cfg.Timeout.Duration),
		Logger:    logger.With("component", "provider"),
		Workers:   cfg.Workers,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL.Duration,
	})
}

// openPrefs opens the preference store at the configured path.
func openPrefs() (*prefs.Store, error) {
	path, err := cfg.PrefsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving prefs path: %w", err)
	}
	store, err := prefs.Open(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("prefs opened", "path", path)
	return store, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
