package sources

import (
	"log/slog"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/crawler"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/sink"
	"github.com/IshaanNene/DigestGoat/internal/summarize"
)

// BuildManager assembles the crawler manager from configuration. A
// source whose required setting is absent is skipped with a log line,
// never an error: the run consists of whatever is configured.
func BuildManager(cfg *config.Config, client *fetcher.Client, snk sink.Sink, logger *slog.Logger) *crawler.Manager {
	manager := crawler.NewManager(logger)

	if len(cfg.Trending.Languages) > 0 {
		manager.Register(NewTrending(&cfg.Trending, client, snk, logger))
	} else {
		logger.Info("trending crawler skipped", "reason", "no languages configured")
	}

	if cfg.Summary.APIKey != "" {
		summarizer := &summarize.TruncateSummarizer{MaxChars: cfg.Summary.MaxChars}
		manager.Register(NewNews(cfg.News, client, snk, summarizer, logger))
	} else {
		logger.Info("news crawler skipped", "reason", "no summary API key configured")
	}

	for _, src := range cfg.Rankings {
		manager.Register(NewRanking(src, client, snk, logger))
	}

	if cfg.CustomSite.URL != "" {
		manager.Register(NewCustomSite(cfg.CustomSite, cfg.Summary.MaxChars, client, snk, logger))
	} else {
		logger.Info("custom site crawler skipped", "reason", "no URL configured")
	}

	if cfg.XAI.APIKey != "" {
		manager.Register(NewXAI(cfg.XAI, client, snk, logger))
	} else {
		logger.Info("xai crawler skipped", "reason", "no API key configured")
	}

	return manager
}
