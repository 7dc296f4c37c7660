// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/domain/port"
)

// CredentialManager hands out the bearer credential for controller calls
// and refreshes it on demand. Concurrent refreshes collapse into a single
// exchange; every caller receives the credential that exchange produced.
type CredentialManager struct {
	exchanger port.TokenExchanger
	store     port.CredentialStore
	apiKey    string

	mu      sync.RWMutex
	current model.Credential
	flight  singleflight.Group
}

// NewCredentialManager returns a manager seeded with the bearer credential
// already at hand, which may be empty when only an API key is configured.
func NewCredentialManager(exchanger port.TokenExchanger, store port.CredentialStore, apiKey, bearer string) *CredentialManager {
	return &CredentialManager{
		exchanger: exchanger,
		store:     store,
		apiKey:    apiKey,
		current:   model.Credential{Token: bearer},
	}
}

// Current returns the credential most recently obtained.
func (m *CredentialManager) Current() model.Credential {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Refresh exchanges the API key for a fresh bearer credential and replaces
// the current one wholesale. Overlapping callers share one exchange.
func (m *CredentialManager) Refresh(ctx context.Context) (model.Credential, error) {
	value, err, _ := m.flight.Do("refresh", func() (interface{}, error) {
		credential, err := m.exchanger.ExchangeAPIKey(ctx, m.apiKey)
		if err != nil {
			return model.Credential{}, err
		}

		m.mu.Lock()
		m.current = credential
		m.mu.Unlock()

		if err := m.store.SaveBearer(ctx, credential); err != nil {
			// The credential still works for this run; only the
			// persisted copy is stale.
			slog.WarnContext(ctx, "could not persist refreshed credential",
				"error", err,
			)
		}

		slog.DebugContext(ctx, "bearer credential refreshed")

		return credential, nil
	})
	if err != nil {
		return model.Credential{}, err
	}

	return value.(model.Credential), nil
}

// EnsureValid makes sure a bearer credential is available, exchanging the
// API key when none was configured up front.
func (m *CredentialManager) EnsureValid(ctx context.Context) error {
	if m.Current().Token != "" {
		return nil
	}

	_, err := m.Refresh(ctx)
	return err
}
