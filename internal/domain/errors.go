package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ConfigError indicates a malformed global or client override document.
// It is fatal for the call; no partial processing happens after it.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid extraction configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a ConfigError.
func NewConfigError(err error) *ConfigError {
	return &ConfigError{Err: err}
}

// IOError indicates the source document could not be read.
type IOError struct {
	Key string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading document %q: %v", e.Key, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err as an IOError for the given document key.
func NewIOError(key string, err error) *IOError {
	return &IOError{Key: key, Err: err}
}

// ModelInvocationError indicates a network or provider failure during the
// model call. RetryAfter carries the provider's backoff hint on HTTP 429;
// the pipeline itself never retries.
type ModelInvocationError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *ModelInvocationError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s invocation failed (rate limited, retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s invocation failed: %v", e.Provider, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// NewModelInvocationError wraps err as a ModelInvocationError.
func NewModelInvocationError(provider string, statusCode int, err error) *ModelInvocationError {
	return &ModelInvocationError{Provider: provider, StatusCode: statusCode, Err: err}
}

// ParseError indicates the model's answer could not be interpreted as
// structured data, after fence-stripping. It is never silently defaulted
// to an empty record.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model response could not be interpreted as structured data: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps err as a ParseError.
func NewParseError(err error) *ParseError {
	return &ParseError{Err: err}
}
