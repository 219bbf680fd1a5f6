package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNotConfigured  = errors.New("no sources are configured")
	ErrEmptyResponse  = errors.New("empty response body")
	ErrAlreadyRunning = errors.New("a run is already in progress")
)

// FetchError wraps transport failures and non-success HTTP statuses.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError wraps structural extraction failures: the selector or schema
// itself could not be constructed. Individual malformed records are
// skipped by the adapters and never reach this type.
type ParseError struct {
	Source   string
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("parse error in %s (selector=%q): %v", e.Source, e.Selector, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UploadError wraps storage sink failures.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload error for %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
