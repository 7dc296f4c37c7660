// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package airgap

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// API paths on the controller.
const (
	objectsPath = "/api/v2/groups"
	loginPath   = "/api/v2/auth/login"
)

// Config holds the configuration for the controller API client
type Config struct {
	// BaseURL is the controller root, without any /api/vN suffix
	BaseURL string

	// Timeout is the HTTP client timeout for API requests
	Timeout time.Duration

	// MaxRetries is the number of additional attempts for transport failures
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:    45 * time.Second,
		MaxRetries: 0,
		RetryDelay: 1 * time.Second,
	}
}

// NewConfig creates a controller client configuration with the provided
// parameters. The base URL is normalized so pasted API URLs keep working.
func NewConfig(baseURL string, timeout time.Duration, maxRetries int, retryDelay time.Duration) (Config, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return Config{}, err
	}

	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryDelay <= 0 {
		retryDelay = 1 * time.Second
	}

	return Config{
		BaseURL:    normalized,
		Timeout:    timeout,
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
	}, nil
}

// normalizeBaseURL trims whitespace and trailing slashes and strips a
// trailing /api/v2 or /api/v3 segment, so both the tenant root and a full
// API URL are accepted
func normalizeBaseURL(baseURL string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return "", fmt.Errorf("controller base URL is required")
	}

	for _, suffix := range []string{"/api/v2", "/api/v3"} {
		if strings.HasSuffix(trimmed, suffix) {
			trimmed = strings.TrimSuffix(trimmed, suffix)
			break
		}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid controller base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("controller base URL needs an http or https scheme, got %q", baseURL)
	}

	return trimmed, nil
}
