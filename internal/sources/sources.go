// Package sources implements one crawler per upstream: trending
// repositories, the Hacker News API, ranking-table pages, a
// configurable site, and the xAI search digest. Every crawler follows
// the same shape — fetch, parse (skipping malformed entries), optional
// enrichment, render to Markdown, upload — and satisfies the
// crawler.Crawler contract.
package sources

import (
	"time"
)

const markdownContentType = "text/markdown"

// datePath builds the destination path for a source document: one file
// per source per day, overwritten on re-runs.
func datePath(slug string) string {
	return time.Now().UTC().Format("2006-01-02") + "/" + slug + ".md"
}
