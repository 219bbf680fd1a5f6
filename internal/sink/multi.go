package sink

import (
	"context"
	"log/slog"
)

// MultiSink writes documents to multiple backends. All backends are
// attempted regardless of individual failures; the first error is
// reported.
type MultiSink struct {
	backends []Sink
	logger   *slog.Logger
}

// NewMultiSink creates a sink that fans out to multiple backends.
func NewMultiSink(backends []Sink, logger *slog.Logger) *MultiSink {
	return &MultiSink{
		backends: backends,
		logger:   logger.With("component", "multi_sink"),
	}
}

func (s *MultiSink) Name() string { return "multi" }

func (s *MultiSink) Upload(ctx context.Context, path string, content []byte, contentType string) error {
	var firstErr error
	for _, backend := range s.backends {
		if err := backend.Upload(ctx, path, content, contentType); err != nil {
			s.logger.Error("backend upload failed", "backend", backend.Name(), "path", path, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *MultiSink) Close() error {
	var firstErr error
	for _, backend := range s.backends {
		if err := backend.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
