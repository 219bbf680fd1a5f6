package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IshaanNene/DigestGoat/internal/config"
	"github.com/IshaanNene/DigestGoat/internal/summarize"
)

type failingSummarizer struct{}

func (failingSummarizer) Summarize(context.Context, string, string) (string, error) {
	return "", errors.New("summarizer unavailable")
}

func newsServer(t *testing.T, items map[int64]string, ids string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/topstories.json" {
			fmt.Fprint(w, ids)
			return
		}
		for id, body := range items {
			if r.URL.Path == fmt.Sprintf("/item/%d.json", id) {
				fmt.Fprint(w, body)
				return
			}
		}
		http.NotFound(w, r)
	}))
}

func newsConfig(baseURL string) config.NewsConfig {
	return config.NewsConfig{
		BaseURL:       baseURL,
		MaxStories:    10,
		MinScore:      20,
		MinHTMLLength: 50,
		MaxHTMLLength: 20000,
	}
}

func TestNewsRunFiltersAndRenders(t *testing.T) {
	longText := "<p>" + strings.Repeat("Self post body text. ", 10) + "</p>"
	items := map[int64]string{
		1: `{"id":1,"title":"Low score","score":15,"url":"https://example.com/a"}`,
		2: `{"id":2,"title":"Linked story","score":25,"url":"https://example.com/b"}`,
		3: fmt.Sprintf(`{"id":3,"title":"Ask thread","score":30,"text":%q}`, longText),
		4: `{"id":4,"title":"","score":99,"url":"https://example.com/d"}`,
	}
	srv := newsServer(t, items, "[1,2,3,4]")
	defer srv.Close()

	snk := newMemorySink()
	summarizer := &summarize.TruncateSummarizer{MaxChars: 40}
	c := NewNews(newsConfig(srv.URL), newTestClient(t), snk, summarizer, testLogger)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if snk.count() != 1 {
		t.Fatalf("expected one upload, got %d", snk.count())
	}

	path, content := snk.only()
	if !strings.HasSuffix(path, "/hacker-news.md") {
		t.Errorf("path = %q", path)
	}

	// Below-threshold and untitled stories are dropped.
	if strings.Contains(content, "Low score") {
		t.Errorf("below-threshold story kept:\n%s", content)
	}
	if sections := strings.Count(content, "\n\n---\n\n") + 1; sections != 2 {
		t.Errorf("expected 2 sections, got %d:\n%s", sections, content)
	}

	if !strings.Contains(content, "# Linked story") || !strings.Contains(content, "[View Link](https://example.com/b)") {
		t.Errorf("linked story rendered wrong:\n%s", content)
	}
	if !strings.Contains(content, "**Score**: 30") {
		t.Errorf("score line missing:\n%s", content)
	}

	// The self post falls in the summarization window, so its body is
	// the 40-char summary rather than the full text.
	if !strings.Contains(content, "Self post body text. Self post body text") {
		t.Errorf("summary missing:\n%s", content)
	}
	if strings.Count(content, "Self post body text.") > 3 {
		t.Errorf("summary not truncated:\n%s", content)
	}
}

func TestNewsSummarizerFailureDegrades(t *testing.T) {
	longText := "<p>" + strings.Repeat("Body text here. ", 10) + "</p>"
	items := map[int64]string{
		1: fmt.Sprintf(`{"id":1,"title":"Ask thread","score":30,"text":%q}`, longText),
	}
	srv := newsServer(t, items, "[1]")
	defer srv.Close()

	snk := newMemorySink()
	c := NewNews(newsConfig(srv.URL), newTestClient(t), snk, failingSummarizer{}, testLogger)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("summarizer failure must not fail the run: %v", err)
	}

	// Without a summary the self-post text is converted to Markdown.
	_, content := snk.only()
	if !strings.Contains(content, "Body text here.") {
		t.Errorf("self-post body missing:\n%s", content)
	}
}

func TestNewsRespectsMaxStories(t *testing.T) {
	items := map[int64]string{
		1: `{"id":1,"title":"One","score":30,"url":"https://example.com/1"}`,
		2: `{"id":2,"title":"Two","score":30,"url":"https://example.com/2"}`,
		3: `{"id":3,"title":"Three","score":30,"url":"https://example.com/3"}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/topstories.json" {
			fmt.Fprint(w, "[1,2,3]")
			return
		}
		for id, body := range items {
			if r.URL.Path == fmt.Sprintf("/item/%d.json", id) {
				fmt.Fprint(w, body)
				return
			}
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := newsConfig(srv.URL)
	cfg.MaxStories = 2

	snk := newMemorySink()
	c := NewNews(cfg, newTestClient(t), snk, &summarize.TruncateSummarizer{MaxChars: 200}, testLogger)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	_, content := snk.only()
	if strings.Contains(content, "# Three") {
		t.Errorf("story beyond max_stories fetched:\n%s", content)
	}
}

func TestNewsIDListFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewNews(newsConfig(srv.URL), newTestClient(t), newMemorySink(), &summarize.TruncateSummarizer{MaxChars: 200}, testLogger)
	if err := c.Run(context.Background()); err == nil {
		t.Error("expected error when the ID list cannot be fetched")
	}
}
