package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/fetcher"
)

const trendingPage = `<!DOCTYPE html>
<html><body>
<article class="Box-row">
  <h2 class="h3"><a href="/alice/widgets">alice / widgets</a></h2>
  <p class="col-9">A widget library.</p>
  <a href="/alice/widgets/stargazers">1,250</a>
</article>
<article class="Box-row">
  <h2 class="h3"><a href="/bob/gadgets">bob / gadgets</a></h2>
  <a href="/bob/gadgets/stargazers">87</a>
</article>
<article class="Box-row">
  <h2 class="h3"></h2>
  <p class="col-9">Entry without a repository link.</p>
</article>
</body></html>`

func newTestClient(t *testing.T) *fetcher.Client {
	t.Helper()
	return fetcher.New(&config.FetcherConfig{
		Timeout:     5 * time.Second,
		UserAgent:   "test-agent",
		MaxBodySize: 1 << 20,
	}, testLogger)
}

func TestTrendingRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trending/go":
			w.Write([]byte(trendingPage))
		case "/trending/rust":
			http.Error(w, "upstream down", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	snk := newMemorySink()
	c := NewTrending(&config.TrendingConfig{
		BaseURL:   srv.URL,
		Languages: []string{"go", "rust"},
	}, newTestClient(t), snk, testLogger)

	// The failing language is skipped, not fatal.
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if snk.count() != 1 {
		t.Fatalf("expected one upload, got %d", snk.count())
	}

	path, content := snk.only()
	wantPath := time.Now().UTC().Format("2006-01-02") + "/github-trending.md"
	if path != wantPath {
		t.Errorf("path = %q, want %q", path, wantPath)
	}

	if !strings.Contains(content, "# alice/widgets") {
		t.Errorf("first repository missing:\n%s", content)
	}
	if !strings.Contains(content, "**Stars**: 1250") {
		t.Errorf("stars not cleaned:\n%s", content)
	}
	if !strings.Contains(content, "[View Repository](https://github.com/bob/gadgets)") {
		t.Errorf("second repository link missing:\n%s", content)
	}
	if !strings.Contains(content, "No description provided.") {
		t.Errorf("missing-description placeholder absent:\n%s", content)
	}
	if strings.Count(content, "\n---\n") != 1 {
		t.Errorf("expected exactly one separator between two entries:\n%s", content)
	}
}

func TestTrendingRunNoRepositories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	snk := newMemorySink()
	c := NewTrending(&config.TrendingConfig{
		BaseURL:   srv.URL,
		Languages: []string{"go"},
	}, newTestClient(t), snk, testLogger)

	// An empty result is a success with no upload.
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if snk.count() != 0 {
		t.Errorf("expected no uploads, got %d", snk.count())
	}
}

func TestTrendingName(t *testing.T) {
	c := NewTrending(&config.TrendingConfig{}, newTestClient(t), newMemorySink(), testLogger)
	if c.Name() != "GitHub Trending" {
		t.Errorf("name = %q", c.Name())
	}
}
