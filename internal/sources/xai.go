package sources

import (
	"context"
	"log/slog"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/sink"
)

const xaiSlug = "xai-news"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages         []chatMessage `json:"messages"`
	SearchParameters struct {
		Mode string `json:"mode"`
	} `json:"search_parameters"`
	Model string `json:"model"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// XAICrawler asks a search-enabled chat model for a news digest and
// uploads the reply verbatim. Unlike the scrapers it produces content
// through one API call, but it follows the same crawler contract.
type XAICrawler struct {
	client *fetcher.Client
	sink   sink.Sink
	cfg    config.XAIConfig
	logger *slog.Logger
}

// NewXAI creates the AI news-digest crawler.
func NewXAI(cfg config.XAIConfig, client *fetcher.Client, snk sink.Sink, logger *slog.Logger) *XAICrawler {
	return &XAICrawler{
		client: client,
		sink:   snk,
		cfg:    cfg,
		logger: logger.With("component", "xai_crawler"),
	}
}

func (c *XAICrawler) Name() string { return "xAI News Digest" }

// Run sends the digest prompt with live search enabled and uploads the
// model's reply. An empty reply is a success with no upload.
func (c *XAICrawler) Run(ctx context.Context) error {
	req := chatRequest{
		Messages: []chatMessage{{Role: "user", Content: c.cfg.Prompt}},
		Model:    c.cfg.Model,
	}
	req.SearchParameters.Mode = "auto"

	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}

	var resp chatResponse
	if err := c.client.PostJSON(ctx, c.cfg.Endpoint, req, headers, &resp); err != nil {
		return err
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	if content == "" {
		c.logger.Warn("model returned no content")
		return nil
	}

	path := datePath(xaiSlug)
	if err := c.sink.Upload(ctx, path, []byte(content), markdownContentType); err != nil {
		return err
	}

	c.logger.Info("news digest uploaded", "path", path, "chars", len(content))
	return nil
}
