package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/schedule"
	"github.com/IshaanNene/DigestGoat/internal/sink"
	"github.com/IshaanNene/DigestGoat/internal/sources"
	"github.com/IshaanNene/DigestGoat/internal/types"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "digestgoat",
		Short: "DigestGoat — daily multi-source content digests",
		Long: `DigestGoat collects content from several upstream sources, renders each
source as a Markdown document, and uploads the documents to object
storage under a {date}/{source}.md layout.

Sources:
  • Trending repositories (per configured language)
  • Hacker News top stories (score-filtered, optionally summarized)
  • Ranking-table pages (selector-driven, config-extensible)
  • A single configurable site snapshot
  • An AI-generated world news digest`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd creates the "run" subcommand: one full crawl pass, then exit.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every configured crawler once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			snk, err := buildSink(cfg, logger)
			if err != nil {
				return err
			}
			defer snk.Close()

			client := fetcher.New(&cfg.Fetcher, logger)
			manager := sources.BuildManager(cfg, client, snk, logger)
			if manager.Len() == 0 {
				return types.ErrNotConfigured
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			outcome, err := manager.RunAll(ctx)
			if err != nil {
				return err
			}
			logger.Info("run complete", "succeeded", outcome.Succeeded, "elapsed", outcome.Elapsed)
			return nil
		},
	}
}

// scheduleCmd creates the "schedule" subcommand: a daemon triggering a
// full crawl at the configured UTC time every day.
func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run as a daemon, crawling daily at the configured time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			snk, err := buildSink(cfg, logger)
			if err != nil {
				return err
			}
			defer snk.Close()

			client := fetcher.New(&cfg.Fetcher, logger)
			manager := sources.BuildManager(cfg, client, snk, logger)
			if manager.Len() == 0 {
				return types.ErrNotConfigured
			}
			logger.Info("crawlers registered", "names", manager.Names())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sched := schedule.New(logger)
			err = sched.AddDaily(cfg.Schedule.Hour, cfg.Schedule.Minute, func() {
				if _, err := manager.RunAll(ctx); err != nil {
					logger.Error("scheduled run failed", "error", err)
				}
			})
			if err != nil {
				return err
			}
			sched.Start()
			logger.Info("daemon running",
				"hour", cfg.Schedule.Hour,
				"minute", cfg.Schedule.Minute,
			)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			logger.Info("shutting down", "signal", sig.String())

			// Cancel in-flight crawls, then wait briefly for the cron
			// loop to drain.
			cancel()
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer stopCancel()
			return sched.Shutdown(stopCtx)
		},
	}
}

// configCmd creates the "config" subcommand, printing the effective
// configuration after defaults, file, and environment are merged.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadDotenv()
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			fmt.Printf("DigestGoat Configuration\n")
			fmt.Printf("========================\n\n")
			fmt.Printf("Storage:\n")
			fmt.Printf("  URL:              %s\n", cfg.Storage.URL)
			fmt.Printf("  Bucket:           %s\n", cfg.Storage.Bucket)
			fmt.Printf("  Key Set:          %v\n", cfg.Storage.Key != "")
			fmt.Printf("  Output Path:      %s\n", cfg.Storage.OutputPath)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Timeout:          %s\n", cfg.Fetcher.Timeout)
			fmt.Printf("  Max Body Size:    %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nTrending:\n")
			fmt.Printf("  Languages:        %v\n", cfg.Trending.Languages)
			fmt.Printf("\nNews:\n")
			fmt.Printf("  Max Stories:      %d\n", cfg.News.MaxStories)
			fmt.Printf("  Min Score:        %d\n", cfg.News.MinScore)
			fmt.Printf("\nRankings:          %d source(s)\n", len(cfg.Rankings))
			for _, src := range cfg.Rankings {
				fmt.Printf("  - %s (%s)\n", src.Slug, src.URL)
			}
			fmt.Printf("\nCustom Site:\n")
			fmt.Printf("  URL:              %s\n", cfg.CustomSite.URL)
			fmt.Printf("\nXAI:\n")
			fmt.Printf("  Model:            %s\n", cfg.XAI.Model)
			fmt.Printf("  Key Set:          %v\n", cfg.XAI.APIKey != "")
			fmt.Printf("\nSchedule:          %02d:%02d UTC daily\n", cfg.Schedule.Hour, cfg.Schedule.Minute)
			return nil
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("digestgoat %s\n", config.Version)
		},
	}
}

// setup loads .env and the configuration and builds the logger.
func setup() (*config.Config, *slog.Logger, error) {
	loadDotenv()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, setupLogger(&cfg.Logging), nil
}

// loadDotenv loads a .env file when one exists. Absence is fine.
func loadDotenv() {
	_ = godotenv.Load()
}

// setupLogger creates a structured logger per the logging config. The
// --verbose flag forces debug level.
func setupLogger(cfg *config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildSink assembles the upload destination: object storage always,
// mirrored to local disk when an output path is configured.
func buildSink(cfg *config.Config, logger *slog.Logger) (sink.Sink, error) {
	object := sink.NewObjectSink(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.Bucket, logger)
	if cfg.Storage.OutputPath == "" {
		return object, nil
	}

	file, err := sink.NewFileSink(cfg.Storage.OutputPath, logger)
	if err != nil {
		return nil, fmt.Errorf("create file sink: %w", err)
	}
	return sink.NewMultiSink([]sink.Sink{object, file}, logger), nil
}
