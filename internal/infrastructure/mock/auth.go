// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// MockTokenExchanger is a mock implementation of TokenExchanger for testing
// and for the CLI's mock target mode
type MockTokenExchanger struct {
	mu     sync.Mutex
	tokens []string
	err    error
	calls  int
}

// NewMockTokenExchanger creates a mock exchanger that hands out the scripted
// tokens in order, repeating the last one. With no script it mints
// mock-token-N values.
func NewMockTokenExchanger(tokens ...string) *MockTokenExchanger {
	return &MockTokenExchanger{tokens: tokens}
}

// FailWith makes every subsequent exchange fail with err
func (m *MockTokenExchanger) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// ExchangeAPIKey implements the TokenExchanger interface with scripted tokens
func (m *MockTokenExchanger) ExchangeAPIKey(ctx context.Context, apiKey string) (model.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	slog.DebugContext(ctx, "executing mock identity exchange",
		"call", m.calls,
	)

	if m.err != nil {
		return model.Credential{}, m.err
	}

	token := fmt.Sprintf("mock-token-%d", m.calls)
	if len(m.tokens) > 0 {
		i := m.calls - 1
		if i >= len(m.tokens) {
			i = len(m.tokens) - 1
		}
		token = m.tokens[i]
	}

	return model.Credential{
		Token:      token,
		ObtainedAt: time.Now(),
	}, nil
}

// Calls returns how many exchanges ran (useful for testing)
func (m *MockTokenExchanger) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockCredentialStore is a mock implementation of CredentialStore for testing
type MockCredentialStore struct {
	mu    sync.Mutex
	err   error
	saved []model.Credential
}

// NewMockCredentialStore creates a mock store that records saved credentials
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// FailWith makes every subsequent save fail with err
func (m *MockCredentialStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SaveBearer implements the CredentialStore interface by recording the credential
func (m *MockCredentialStore) SaveBearer(ctx context.Context, credential model.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.saved = append(m.saved, credential)
	return nil
}

// Saved returns every credential handed to SaveBearer (useful for testing)
func (m *MockCredentialStore) Saved() []model.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Credential(nil), m.saved...)
}
