// Package sink provides the storage backends crawl documents are
// written to. Every backend has upsert semantics: re-uploading to the
// same path overwrites prior content.
package sink

import "context"

// Sink accepts a rendered document and stores it under a path.
type Sink interface {
	// Name returns the sink's identifier.
	Name() string

	// Upload stores content at path, overwriting any prior content.
	Upload(ctx context.Context, path string, content []byte, contentType string) error

	// Close releases resources.
	Close() error
}
