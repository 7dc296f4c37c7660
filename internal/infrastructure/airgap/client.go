// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package airgap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/pkg/constants"
	"github.com/ztbtools/objectsync/pkg/errors"
	"github.com/ztbtools/objectsync/pkg/httpclient"
)

// Client represents a controller API client. It implements both the object
// creation and the token exchange ports against the same tenant.
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// CreateObject posts one object payload to the controller. Any completed
// exchange comes back as data for the dispatcher to interpret; only
// transport failures are errors.
func (c *Client) CreateObject(ctx context.Context, body []byte, bearer string) (*model.RemoteResponse, error) {
	url := fmt.Sprintf("%s%s?refresh_token=enabled", c.config.BaseURL, objectsPath)

	resp, err := c.httpClient.Request(ctx, http.MethodPost, url, body, c.headers(bearer))
	if err != nil {
		return nil, fmt.Errorf("posting object to controller: %w", err)
	}

	slog.DebugContext(ctx, "controller answered",
		"status_code", resp.StatusCode,
	)

	return &model.RemoteResponse{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}, nil
}

// ExchangeAPIKey trades the configured API key for a fresh bearer credential
func (c *Client) ExchangeAPIKey(ctx context.Context, apiKey string) (model.Credential, error) {
	if strings.TrimSpace(apiKey) == "" {
		return model.Credential{}, errors.NewAuthExchange(0, "no API key available for the identity exchange")
	}

	body, err := json.Marshal(loginRequest{APIKey: strings.TrimSpace(apiKey)})
	if err != nil {
		return model.Credential{}, errors.NewAuthExchange(0, "encoding identity request", err)
	}

	resp, err := c.httpClient.Request(ctx, http.MethodPost, c.config.BaseURL+loginPath, body, c.headers(""))
	if err != nil {
		return model.Credential{}, errors.NewAuthExchange(0, "identity endpoint unreachable", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return model.Credential{}, errors.NewAuthExchange(resp.StatusCode,
			fmt.Sprintf("identity endpoint rejected the exchange: %s", bodySnippet(resp.Body)))
	}

	var login loginResponse
	if err := json.Unmarshal(resp.Body, &login); err != nil {
		return model.Credential{}, errors.NewAuthExchange(resp.StatusCode, "decoding identity response", err)
	}

	token := strings.TrimSpace(login.Token)
	if token == "" {
		return model.Credential{}, errors.NewAuthExchange(resp.StatusCode, "identity endpoint returned no token")
	}

	slog.DebugContext(ctx, "bearer credential refreshed")

	return model.Credential{
		Token:      token,
		ObtainedAt: time.Now(),
	}, nil
}

// headers builds the request headers the controller expects. A request ID
// goes on every exchange so one call can be found in the controller logs.
func (c *Client) headers(bearer string) map[string]string {
	headers := map[string]string{
		"Content-Type":            constants.ContentTypeJSON,
		"Accept":                  constants.AcceptDefault,
		"User-Agent":              constants.UserAgent,
		constants.HeaderRequestID: uuid.New().String(),
	}
	if bearer != "" {
		headers[constants.HeaderAuthorization] = constants.BearerPrefix + bearer
	}
	return headers
}

// bodySnippet flattens and truncates a response body for error messages
func bodySnippet(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > constants.BodySnippetLimit {
		s = s[:constants.BodySnippetLimit]
	}
	return s
}

// NewClient creates a new controller API client
func NewClient(config Config) *Client {
	httpConfig := httpclient.Config{
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryDelay:   config.RetryDelay,
		RetryBackoff: true,
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}
}
