// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// CreateCall records one CreateObject invocation
type CreateCall struct {
	Body   []byte
	Bearer string
}

// MockObjectCreator is a mock implementation of ObjectCreator for testing
// and for the CLI's mock target mode
// This demonstrates how the clean architecture allows easy swapping of implementations
type MockObjectCreator struct {
	mu        sync.Mutex
	responses []model.RemoteResponse
	err       error
	calls     []CreateCall
}

// NewMockObjectCreator creates a mock creator that answers with the scripted
// responses in order, repeating the last one. With no script every call is
// answered with a 201.
func NewMockObjectCreator(responses ...model.RemoteResponse) *MockObjectCreator {
	return &MockObjectCreator{responses: responses}
}

// FailWith makes every subsequent call return err instead of a response
func (m *MockObjectCreator) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// CreateObject implements the ObjectCreator interface with scripted responses
func (m *MockObjectCreator) CreateObject(ctx context.Context, body []byte, bearer string) (*model.RemoteResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slog.DebugContext(ctx, "executing mock object creation",
		"call", len(m.calls)+1,
		"bytes", len(body),
	)

	m.calls = append(m.calls, CreateCall{
		Body:   append([]byte(nil), body...),
		Bearer: bearer,
	})

	if m.err != nil {
		return nil, m.err
	}

	if len(m.responses) == 0 {
		return &model.RemoteResponse{StatusCode: http.StatusCreated, Body: []byte(`{"id":"mock"}`)}, nil
	}

	i := len(m.calls) - 1
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	resp := m.responses[i]

	return &resp, nil
}

// Calls returns every recorded invocation (useful for testing)
func (m *MockObjectCreator) Calls() []CreateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateCall(nil), m.calls...)
}

// CallCount returns how many times CreateObject ran (useful for testing)
func (m *MockObjectCreator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
