package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/extract"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/sink"
	"github.com/IshaanNene/DigestGoat/internal/summarize"
)

const newsSlug = "hacker-news"

// storyItem is the upstream item payload. Only the fields the digest
// needs are decoded.
type storyItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Score int64  `json:"score"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// Story is one rendered-ready record: a story that passed the score
// filter, with an optional summary of its body text.
type Story struct {
	Title   string
	Score   int64
	URL     string
	Text    string
	Summary string
}

// NewsCrawler fetches the top stories from the link-aggregator API,
// filters by score, optionally summarizes self-post bodies, and uploads
// a combined Markdown digest.
type NewsCrawler struct {
	client     *fetcher.Client
	sink       sink.Sink
	summarizer summarize.Summarizer
	converter  *md.Converter
	cfg        config.NewsConfig
	logger     *slog.Logger
}

// NewNews creates the link-aggregator crawler.
func NewNews(cfg config.NewsConfig, client *fetcher.Client, snk sink.Sink, summarizer summarize.Summarizer, logger *slog.Logger) *NewsCrawler {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &NewsCrawler{
		client:     client,
		sink:       snk,
		summarizer: summarizer,
		converter:  md.NewConverter("", true, nil),
		cfg:        cfg,
		logger:     logger.With("component", "news_crawler"),
	}
}

func (c *NewsCrawler) Name() string { return "Hacker News" }

// Run fetches the story ID list, then every story concurrently. A
// failed or filtered story is skipped; the task only fails when the ID
// list cannot be fetched or the upload fails.
func (c *NewsCrawler) Run(ctx context.Context) error {
	var ids []int64
	if err := c.client.GetJSON(ctx, c.cfg.BaseURL+"/topstories.json", &ids); err != nil {
		return err
	}
	if len(ids) > c.cfg.MaxStories {
		ids = ids[:c.cfg.MaxStories]
	}
	c.logger.Info("top story IDs fetched", "count", len(ids))

	var (
		mu      sync.Mutex
		stories []Story
		wg      sync.WaitGroup
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			story, ok := c.fetchStory(ctx, id)
			if !ok {
				return
			}
			mu.Lock()
			stories = append(stories, story)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	if len(stories) == 0 {
		c.logger.Info("no stories passed the filters")
		return nil
	}

	sections := make([]string, len(stories))
	for i, story := range stories {
		sections[i] = c.renderStory(story)
	}

	path := datePath(newsSlug)
	content := strings.Join(sections, "\n\n---\n\n")
	if err := c.sink.Upload(ctx, path, []byte(content), markdownContentType); err != nil {
		return err
	}

	c.logger.Info("stories uploaded", "path", path, "stories", len(stories))
	return nil
}

// fetchStory retrieves and filters one story. Returns ok=false when the
// story failed to fetch, is malformed, or falls below the score
// threshold.
func (c *NewsCrawler) fetchStory(ctx context.Context, id int64) (Story, bool) {
	var item storyItem
	url := fmt.Sprintf("%s/item/%d.json", c.cfg.BaseURL, id)
	if err := c.client.GetJSON(ctx, url, &item); err != nil {
		c.logger.Warn("story fetch failed", "id", id, "error", err)
		return Story{}, false
	}

	if item.Title == "" {
		c.logger.Warn("skipping story without a title", "id", id)
		return Story{}, false
	}
	if item.Score < c.cfg.MinScore {
		return Story{}, false
	}

	story := Story{
		Title: item.Title,
		Score: item.Score,
		URL:   item.URL,
		Text:  item.Text,
	}

	// Summarize self-post bodies within the configured size window.
	// A summarizer failure degrades to "no summary".
	if n := len(item.Text); n >= c.cfg.MinHTMLLength && n < c.cfg.MaxHTMLLength {
		c.logger.Debug("summarizing story", "id", id, "title", item.Title)
		clean := extract.StripHTML(item.Text)
		summary, err := c.summarizer.Summarize(ctx, item.Title, clean)
		if err != nil {
			c.logger.Warn("summarization failed", "id", id, "title", item.Title, "error", err)
		} else {
			story.Summary = summary
		}
	}

	return story, true
}

// renderStory formats one story section. The body is the external link
// when present, then the summary, then the markdownified self-post
// text, then a placeholder.
func (c *NewsCrawler) renderStory(story Story) string {
	body := "No content available."
	switch {
	case story.URL != "":
		body = fmt.Sprintf("[View Link](%s)", story.URL)
	case story.Summary != "":
		body = story.Summary
	case story.Text != "":
		converted, err := c.converter.ConvertString(story.Text)
		if err != nil {
			c.logger.Warn("markdown conversion failed", "title", story.Title, "error", err)
			converted = extract.StripHTML(story.Text)
		}
		body = strings.TrimSpace(converted)
	}

	return fmt.Sprintf("# %s\n\n**Score**: %d\n\n%s", story.Title, story.Score, body)
}
