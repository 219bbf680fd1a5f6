package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/IshaanNene/DigestGoat/internal/types"
)

// FileSink writes documents to the local filesystem under a root
// directory, mirroring the object-storage path layout. Useful for
// development and as a secondary output alongside the object sink.
type FileSink struct {
	root   string
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewFileSink creates a file sink rooted at dir.
func NewFileSink(dir string, logger *slog.Logger) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileSink{
		root:   dir,
		logger: logger.With("component", "file_sink"),
	}, nil
}

func (s *FileSink) Name() string { return "file" }

// Upload writes the content to {root}/{path}, creating date directories
// as needed. Re-uploading to the same path truncates and overwrites.
func (s *FileSink) Upload(_ context.Context, path string, content []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return &types.UploadError{Path: path, Err: err}
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return &types.UploadError{Path: path, Err: err}
	}

	s.count++
	s.logger.Debug("file written", "path", full, "bytes", len(content))
	return nil
}

func (s *FileSink) Close() error {
	s.logger.Info("file sink closing", "documents", s.count)
	return nil
}
