package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/extract"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
	"github.com/IshaanNene/DigestGoat/internal/sink"
	"github.com/IshaanNene/DigestGoat/internal/types"
)

// RankingRecord is one accepted row from a ranking table. Rank is
// assigned in acceptance order; a malformed row never consumes a slot.
type RankingRecord struct {
	Rank        int
	Name        string
	Description string
	Score       int64
}

// RankingCrawler scrapes one configured ranking-table page and uploads
// it as a Markdown table. The page structure is fully described by the
// source's selector rules, so each configured RankingSource becomes its
// own crawler instance.
type RankingCrawler struct {
	client *fetcher.Client
	sink   sink.Sink
	src    config.RankingSource
	logger *slog.Logger
}

// NewRanking creates a crawler for one ranking source.
func NewRanking(src config.RankingSource, client *fetcher.Client, snk sink.Sink, logger *slog.Logger) *RankingCrawler {
	return &RankingCrawler{
		client: client,
		sink:   snk,
		src:    src,
		logger: logger.With("component", "ranking_crawler", "slug", src.Slug),
	}
}

func (c *RankingCrawler) Name() string { return c.src.Title }

// Run validates the selector rules, scrapes the page, and uploads the
// rendered table. A selector that fails to compile is a structural
// error and fails the task; a row missing its name is skipped.
func (c *RankingCrawler) Run(ctx context.Context) error {
	if err := c.validateRules(); err != nil {
		return err
	}

	body, err := c.client.Get(ctx, c.src.URL)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return &types.ParseError{Source: c.src.Slug, Err: err}
	}

	records := c.collect(doc)
	if len(records) == 0 {
		c.logger.Info("no ranking records extracted")
		return nil
	}

	path := datePath(c.src.Slug)
	content := c.renderTable(records)
	if err := c.sink.Upload(ctx, path, []byte(content), markdownContentType); err != nil {
		return err
	}

	c.logger.Info("rankings uploaded", "path", path, "records", len(records))
	return nil
}

func (c *RankingCrawler) validateRules() error {
	rules := map[string]config.SelectorRule{
		"row":         c.src.Row,
		"name":        c.src.Name,
		"description": c.src.Description,
		"score":       c.src.Score,
	}
	for field, rule := range rules {
		if !rule.Set() {
			continue
		}
		if err := extract.Validate(rule); err != nil {
			return &types.ParseError{Source: c.src.Slug, Selector: field, Err: err}
		}
	}
	return nil
}

// collect walks the row matches and extracts one record per well-formed
// row. Rank follows the accepted records, not the raw row index.
func (c *RankingCrawler) collect(doc *goquery.Document) []RankingRecord {
	var records []RankingRecord
	extract.Each(doc, c.src.Row, func(row *goquery.Selection) {
		name, ok := extract.Value(row, c.src.Name)
		if !ok || name == "" {
			return
		}

		record := RankingRecord{
			Rank: len(records) + 1,
			Name: name,
		}
		if c.src.Description.Set() {
			record.Description, _ = extract.Value(row, c.src.Description)
		}
		if c.src.Score.Set() {
			raw, _ := extract.Value(row, c.src.Score)
			record.Score = extract.Digits(raw)
		}
		records = append(records, record)
	})
	return records
}

// renderTable formats the records as a Markdown table. The description
// column only appears when the source carries a description rule.
func (c *RankingCrawler) renderTable(records []RankingRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.src.Title)
	fmt.Fprintf(&b, "*Fetched on %s*\n\n", time.Now().UTC().Format("2006-01-02"))

	scoreLabel := c.src.ScoreLabel
	if scoreLabel == "" {
		scoreLabel = "Score"
	}

	withDescription := c.src.Description.Set()
	if withDescription {
		fmt.Fprintf(&b, "| Rank | Name | Description | %s |\n", scoreLabel)
		b.WriteString("|------|------|-------------|-------|\n")
	} else {
		fmt.Fprintf(&b, "| Rank | Name | %s |\n", scoreLabel)
		b.WriteString("|------|------|-------|\n")
	}

	for _, record := range records {
		if withDescription {
			fmt.Fprintf(&b, "| %d | %s | %s | %d |\n",
				record.Rank, tableCell(record.Name), tableCell(record.Description), record.Score)
		} else {
			fmt.Fprintf(&b, "| %d | %s | %d |\n",
				record.Rank, tableCell(record.Name), record.Score)
		}
	}
	return b.String()
}

// tableCell flattens a value so it cannot break the table layout.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
