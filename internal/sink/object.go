package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/IshaanNene/DigestGoat/internal/types"
)

// ObjectSink uploads documents to an object-storage bucket over HTTP.
// The endpoint follows the Supabase Storage object API: a POST with an
// x-upsert header replaces any existing object at the same path. A
// single attempt is made per upload; there is no retry logic here.
type ObjectSink struct {
	client  *http.Client
	baseURL string
	apiKey  string
	bucket  string
	logger  *slog.Logger
}

// NewObjectSink creates an object-storage sink. baseURL is the storage
// API root (e.g. "https://x.supabase.co/storage/v1").
func NewObjectSink(baseURL, apiKey, bucket string, logger *slog.Logger) *ObjectSink {
	return &ObjectSink{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		logger:  logger.With("component", "object_sink"),
	}
}

func (s *ObjectSink) Name() string { return "object" }

// Upload stores the content at {base}/object/{bucket}/{path}.
func (s *ObjectSink) Upload(ctx context.Context, path string, content []byte, contentType string) error {
	url := fmt.Sprintf("%s/object/%s/%s", s.baseURL, s.bucket, strings.TrimPrefix(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return &types.UploadError{Path: path, Err: err}
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	s.logger.Debug("uploading", "url", url, "bytes", len(content))

	resp, err := s.client.Do(req)
	if err != nil {
		return &types.UploadError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &types.UploadError{
			Path: path,
			Err:  fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	s.logger.Info("uploaded", "path", path, "bytes", len(content))
	return nil
}

func (s *ObjectSink) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
