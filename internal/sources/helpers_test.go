package sources

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// memorySink captures uploads for assertions.
type memorySink struct {
	mu      sync.Mutex
	uploads map[string]string
	types   map[string]string
	err     error
}

func newMemorySink() *memorySink {
	return &memorySink{
		uploads: make(map[string]string),
		types:   make(map[string]string),
	}
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Upload(_ context.Context, path string, content []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.uploads[path] = string(content)
	s.types[path] = contentType
	return nil
}

func (s *memorySink) Close() error { return nil }

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

// only returns the single captured upload's content.
func (s *memorySink) only() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, content := range s.uploads {
		return path, content
	}
	return "", ""
}
