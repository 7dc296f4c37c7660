// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/infrastructure/mock"
	"github.com/ztbtools/objectsync/pkg/errors"
)

func TestCredentialManagerCurrent(t *testing.T) {
	assertion := assert.New(t)

	exchanger := mock.NewMockTokenExchanger()
	store := mock.NewMockCredentialStore()
	manager := NewCredentialManager(exchanger, store, "api-key", "seed-token")

	assertion.Equal("seed-token", manager.Current().Token)
	assertion.Equal(0, exchanger.Calls())
}

func TestCredentialManagerRefresh(t *testing.T) {
	assertion := assert.New(t)

	exchanger := mock.NewMockTokenExchanger("fresh-token")
	store := mock.NewMockCredentialStore()
	manager := NewCredentialManager(exchanger, store, "api-key", "stale-token")

	credential, err := manager.Refresh(context.Background())

	assertion.NoError(err)
	assertion.Equal("fresh-token", credential.Token)
	assertion.Equal("fresh-token", manager.Current().Token)

	// The refreshed credential is persisted for the next invocation.
	saved := store.Saved()
	assertion.Len(saved, 1)
	assertion.Equal("fresh-token", saved[0].Token)
}

func TestCredentialManagerRefreshExchangeFailure(t *testing.T) {
	assertion := assert.New(t)

	exchanger := mock.NewMockTokenExchanger()
	exchanger.FailWith(errors.NewAuthExchange(503, "identity endpoint unreachable"))
	store := mock.NewMockCredentialStore()
	manager := NewCredentialManager(exchanger, store, "api-key", "stale-token")

	_, err := manager.Refresh(context.Background())

	assertion.Error(err)
	assertion.IsType(errors.AuthExchange{}, err)
	assertion.Equal("stale-token", manager.Current().Token)
	assertion.Empty(store.Saved())
}

func TestCredentialManagerRefreshStoreFailure(t *testing.T) {
	assertion := assert.New(t)

	exchanger := mock.NewMockTokenExchanger("fresh-token")
	store := mock.NewMockCredentialStore()
	store.FailWith(errors.NewUnexpected("env file is not writable"))
	manager := NewCredentialManager(exchanger, store, "api-key", "")

	credential, err := manager.Refresh(context.Background())

	// A failed save never fails the refresh; the credential still works
	// for the rest of the run.
	assertion.NoError(err)
	assertion.Equal("fresh-token", credential.Token)
	assertion.Equal("fresh-token", manager.Current().Token)
}

func TestCredentialManagerEnsureValid(t *testing.T) {
	assertion := assert.New(t)

	t.Run("configured bearer needs no exchange", func(t *testing.T) {
		exchanger := mock.NewMockTokenExchanger()
		manager := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "seed-token")

		assertion.NoError(manager.EnsureValid(context.Background()))
		assertion.Equal(0, exchanger.Calls())
	})

	t.Run("missing bearer triggers one exchange", func(t *testing.T) {
		exchanger := mock.NewMockTokenExchanger("minted-token")
		manager := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "")

		assertion.NoError(manager.EnsureValid(context.Background()))
		assertion.Equal(1, exchanger.Calls())
		assertion.Equal("minted-token", manager.Current().Token)
	})

	t.Run("exchange failure surfaces", func(t *testing.T) {
		exchanger := mock.NewMockTokenExchanger()
		exchanger.FailWith(errors.NewAuthExchange(401, "identity endpoint rejected the exchange"))
		manager := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "")

		err := manager.EnsureValid(context.Background())
		assertion.Error(err)
		assertion.IsType(errors.AuthExchange{}, err)
	})
}

// gatedExchanger blocks every exchange until released so tests can hold
// several refreshes in flight at once.
type gatedExchanger struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func (g *gatedExchanger) ExchangeAPIKey(ctx context.Context, apiKey string) (model.Credential, error) {
	g.calls.Add(1)
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return model.Credential{Token: "gated-token", ObtainedAt: time.Now()}, nil
}

func TestCredentialManagerCollapsesConcurrentRefreshes(t *testing.T) {
	assertion := assert.New(t)

	exchanger := &gatedExchanger{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	manager := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "stale-token")

	const callers = 8

	var wg sync.WaitGroup
	tokens := make([]string, callers)
	failures := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			credential, err := manager.Refresh(context.Background())
			tokens[i], failures[i] = credential.Token, err
		}(i)
	}

	// Hold the first exchange open until the stragglers had time to join
	// it, then let everyone through.
	<-exchanger.entered
	time.Sleep(50 * time.Millisecond)
	close(exchanger.release)
	wg.Wait()

	assertion.Equal(int32(1), exchanger.calls.Load())
	for i := 0; i < callers; i++ {
		assertion.NoError(failures[i])
		assertion.Equal("gated-token", tokens[i])
	}
	assertion.Equal("gated-token", manager.Current().Token)
}
