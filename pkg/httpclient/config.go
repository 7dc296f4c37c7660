// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"time"
)

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of additional attempts after the
	// first one. Zero means every exchange is a single attempt.
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// RetryBackoff enables exponential backoff for retries
	RetryBackoff bool
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:      45 * time.Second,
		MaxRetries:   0,
		RetryDelay:   1 * time.Second,
		RetryBackoff: true,
	}
}
