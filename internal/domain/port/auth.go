// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// TokenExchanger defines the behavior for trading a long-lived API key for a
// short-lived bearer credential
// This abstraction allows different identity implementations (HTTP API,
// mock, etc.) without the domain layer knowing about specific implementations
type TokenExchanger interface {
	// ExchangeAPIKey obtains a fresh bearer credential for the API key
	ExchangeAPIKey(ctx context.Context, apiKey string) (model.Credential, error)
}

// CredentialStore defines the behavior for persisting a refreshed credential
// so later runs can reuse it
type CredentialStore interface {
	// SaveBearer writes the credential to durable storage
	SaveBearer(ctx context.Context, credential model.Credential) error
}

// CredentialProvider defines the behavior the dispatcher needs from the
// credential manager: the current token and a way to refresh it
type CredentialProvider interface {
	// Current returns the credential held right now, possibly empty
	Current() model.Credential

	// Refresh trades the configured API key for a fresh credential,
	// collapsing concurrent calls into a single exchange
	Refresh(ctx context.Context) (model.Credential, error)
}
