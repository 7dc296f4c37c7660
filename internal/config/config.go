// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

// Package config resolves the settings for one objectsync invocation.
// Values come from the env file first, then exported environment
// variables; command line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ztbtools/objectsync/pkg/constants"
	"github.com/ztbtools/objectsync/pkg/errors"
)

// Delivery targets.
const (
	// TargetZTB delivers objects to the controller API
	TargetZTB = "ztb"
	// TargetMock delivers objects to an in-process stub
	TargetMock = "mock"
)

// Environment variables read on top of the env file.
const (
	envBaseURL    = "ZTB_API_BASE"
	envBaseURLAlt = "BASE_URL"
	envAPIKey     = "API_KEY"
	envBearer     = "BEARER"
	envTimeout    = "ZTB_HTTP_TIMEOUT"
	envMaxRetries = "ZTB_HTTP_MAX_RETRIES"
	envRetryDelay = "ZTB_HTTP_RETRY_DELAY"
)

// HTTP tuning defaults, matching the controller adapter.
const (
	defaultHTTPTimeout = 45 * time.Second
	defaultMaxRetries  = 0
	defaultRetryDelay  = 1 * time.Second
)

// Config holds all settings for one run.
type Config struct {
	// CSVPath is the input file with object definition rows
	CSVPath string
	// TemplatePath optionally overrides the built-in payload template
	TemplatePath string
	// TypesPath optionally extends the object type registry from a YAML file
	TypesPath string
	// EnvFile is the dotenv file credentials are read from and written back to
	EnvFile string
	// Target selects the delivery backend, ztb or mock
	Target string
	// BaseURL is the controller root, e.g. https://tenant-api.goairgap.com
	BaseURL string
	// APIKey is exchanged for a bearer credential when needed
	APIKey string
	// Bearer is the credential presented on delivery
	Bearer string
	// DryRun previews payloads without delivering them
	DryRun bool
	// Verbose raises log verbosity to debug
	Verbose bool
	// HTTPTimeout is the per-request timeout for controller calls
	HTTPTimeout time.Duration
	// MaxRetries is the transport retry budget per controller call
	MaxRetries int
	// RetryDelay is the initial backoff between transport retries
	RetryDelay time.Duration
}

// Load reads the env file and the environment into a Config with defaults
// applied. A missing env file is not an error; exported variables may carry
// everything.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = constants.DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, errors.NewValidation(fmt.Sprintf("loading env file %s", envFile), err)
	}

	cfg := &Config{
		CSVPath:     constants.DefaultCSVPath,
		EnvFile:     envFile,
		Target:      TargetZTB,
		BaseURL:     getenvClean(envBaseURL),
		APIKey:      getenvClean(envAPIKey),
		Bearer:      getenvClean(envBearer),
		HTTPTimeout: defaultHTTPTimeout,
		MaxRetries:  defaultMaxRetries,
		RetryDelay:  defaultRetryDelay,
	}

	// ZTB_API_BASE wins for consistency with the other tenant tools.
	if cfg.BaseURL == "" {
		cfg.BaseURL = getenvClean(envBaseURLAlt)
	}

	var err error
	if cfg.HTTPTimeout, err = durationEnv(envTimeout, cfg.HTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = intEnv(envMaxRetries, cfg.MaxRetries); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = durationEnv(envRetryDelay, cfg.RetryDelay); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.CSVPath == "" {
		errs = append(errs, "csv path is required")
	}

	switch c.Target {
	case TargetZTB:
		if c.BaseURL == "" {
			errs = append(errs, "ZTB_API_BASE or BASE_URL is required, expected https://<tenant>-api.goairgap.com")
		}
		if !c.DryRun && c.Bearer == "" && c.APIKey == "" {
			errs = append(errs, "either BEARER or API_KEY must be set to deliver objects")
		}
	case TargetMock:
		// The stub needs no endpoint or credentials.
	default:
		errs = append(errs, fmt.Sprintf("target (%q) must be one of: %s, %s", c.Target, TargetZTB, TargetMock))
	}

	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("%s must be positive", envTimeout))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("%s must be non-negative", envMaxRetries))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Sprintf("%s must be non-negative", envRetryDelay))
	}

	if len(errs) > 0 {
		return errors.NewValidation(fmt.Sprintf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - ")))
	}

	return nil
}

// String returns a log-safe view of the configuration with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{CSV: %q, Template: %q, Types: %q, EnvFile: %q, Target: %q, BaseURL: %q, APIKey: %s, Bearer: %s, DryRun: %v, Verbose: %v, HTTPTimeout: %s, MaxRetries: %d, RetryDelay: %s}",
		c.CSVPath, c.TemplatePath, c.TypesPath, c.EnvFile, c.Target, c.BaseURL,
		mask(c.APIKey), mask(c.Bearer), c.DryRun, c.Verbose,
		c.HTTPTimeout, c.MaxRetries, c.RetryDelay)
}

func mask(secret string) string {
	if secret == "" {
		return "[unset]"
	}
	return "[MASKED]"
}

func getenvClean(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := getenvClean(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.NewValidation(fmt.Sprintf("invalid duration for %s (%q)", key, raw), err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := getenvClean(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidation(fmt.Sprintf("invalid integer for %s (%q)", key, raw), err)
	}
	return n, nil
}
