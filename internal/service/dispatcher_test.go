// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/infrastructure/mock"
	"github.com/ztbtools/objectsync/pkg/errors"
)

func testPayload(name, objectType string) model.Payload {
	return model.Payload{
		Name:             name,
		Type:             objectType,
		Owner:            "user",
		MemberAttributes: map[string][]string{"fqdn": {"a.example.com"}},
		Body:             []byte(`{"name": "` + name + `", "type": "` + objectType + `"}`),
	}
}

func TestDispatcherSend(t *testing.T) {
	tests := []struct {
		name           string
		response       model.RemoteResponse
		expectedStatus model.OutcomeStatus
		expectedReason string
		detailContains string
	}{
		{
			name:           "201 creates the object",
			response:       model.RemoteResponse{StatusCode: 201, Body: []byte(`{"id":"42"}`)},
			expectedStatus: model.OutcomeCreated,
			detailContains: "status 201",
		},
		{
			name:           "202 accepted counts as created",
			response:       model.RemoteResponse{StatusCode: 202},
			expectedStatus: model.OutcomeCreated,
			detailContains: "status 202",
		},
		{
			name:           "409 skips an object that already exists",
			response:       model.RemoteResponse{StatusCode: 409, Body: []byte(`{"error":"duplicate"}`)},
			expectedStatus: model.OutcomeSkipped,
			expectedReason: model.ReasonAlreadyExists,
		},
		{
			name:           "404 is a client error",
			response:       model.RemoteResponse{StatusCode: 404, Body: []byte(`{"error":"no such tenant"}`)},
			expectedStatus: model.OutcomeFailed,
			expectedReason: model.CauseClientError,
			detailContains: "no such tenant",
		},
		{
			name:           "422 is a client error",
			response:       model.RemoteResponse{StatusCode: 422, Body: []byte(`{"error":"bad member"}`)},
			expectedStatus: model.OutcomeFailed,
			expectedReason: model.CauseClientError,
			detailContains: "status 422",
		},
		{
			name:           "500 is a transport error",
			response:       model.RemoteResponse{StatusCode: 500, Body: []byte("upstream store on fire")},
			expectedStatus: model.OutcomeFailed,
			expectedReason: model.CauseTransportError,
			detailContains: "upstream store on fire",
		},
		{
			name:           "503 is a transport error",
			response:       model.RemoteResponse{StatusCode: 503},
			expectedStatus: model.OutcomeFailed,
			expectedReason: model.CauseTransportError,
			detailContains: "status 503",
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			creator := mock.NewMockObjectCreator(tc.response)
			credentials := NewCredentialManager(mock.NewMockTokenExchanger(), mock.NewMockCredentialStore(), "api-key", "seed-token")
			dispatcher := NewDispatcher(creator, credentials, false)

			// Execute
			outcome := dispatcher.Send(context.Background(), testPayload("allow-a", "domains"))

			// Verify
			assertion.Equal("allow-a", outcome.Name)
			assertion.Equal("domains", outcome.Type)
			assertion.Equal(tc.expectedStatus, outcome.Status)
			assertion.Equal(tc.expectedReason, outcome.Reason)
			if tc.detailContains != "" {
				assertion.Contains(outcome.Detail, tc.detailContains)
			}
			assertion.False(outcome.DryRun)
			assertion.Equal(1, creator.CallCount())
		})
	}
}

func TestDispatcherSendTransportError(t *testing.T) {
	assertion := assert.New(t)

	creator := mock.NewMockObjectCreator()
	creator.FailWith(errors.NewUnexpected("posting object to controller"))
	credentials := NewCredentialManager(mock.NewMockTokenExchanger(), mock.NewMockCredentialStore(), "api-key", "seed-token")
	dispatcher := NewDispatcher(creator, credentials, false)

	outcome := dispatcher.Send(context.Background(), testPayload("allow-a", "domains"))

	assertion.Equal(model.OutcomeFailed, outcome.Status)
	assertion.Equal(model.CauseTransportError, outcome.Reason)
	assertion.Contains(outcome.Detail, "posting object to controller")
}

func TestDispatcherRefreshAndRetry(t *testing.T) {
	assertion := assert.New(t)

	// First delivery is rejected, the retry with the fresh credential lands.
	creator := mock.NewMockObjectCreator(
		model.RemoteResponse{StatusCode: 401, Body: []byte(`{"error":"token expired"}`)},
		model.RemoteResponse{StatusCode: 201},
	)
	exchanger := mock.NewMockTokenExchanger("fresh-token")
	store := mock.NewMockCredentialStore()
	credentials := NewCredentialManager(exchanger, store, "api-key", "stale-token")
	dispatcher := NewDispatcher(creator, credentials, false)

	outcome := dispatcher.Send(context.Background(), testPayload("allow-a", "domains"))

	assertion.Equal(model.OutcomeCreated, outcome.Status)

	calls := creator.Calls()
	assertion.Len(calls, 2)
	assertion.Equal("stale-token", calls[0].Bearer)
	assertion.Equal("fresh-token", calls[1].Bearer)
	assertion.Equal(calls[0].Body, calls[1].Body)

	assertion.Equal(1, exchanger.Calls())
	assertion.Len(store.Saved(), 1)
}

func TestDispatcherPersistentAuthFailure(t *testing.T) {
	assertion := assert.New(t)

	creator := mock.NewMockObjectCreator(
		model.RemoteResponse{StatusCode: 401},
		model.RemoteResponse{StatusCode: 401, Body: []byte(`{"error":"key revoked"}`)},
	)
	exchanger := mock.NewMockTokenExchanger("fresh-token")
	credentials := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "stale-token")
	dispatcher := NewDispatcher(creator, credentials, false)

	outcome := dispatcher.Send(context.Background(), testPayload("allow-a", "domains"))

	// One retry, never more.
	assertion.Equal(model.OutcomeFailed, outcome.Status)
	assertion.Equal(model.CausePersistentAuth, outcome.Reason)
	assertion.Contains(outcome.Detail, "key revoked")
	assertion.Equal(2, creator.CallCount())
	assertion.Equal(1, exchanger.Calls())
}

func TestDispatcherRefreshFailure(t *testing.T) {
	assertion := assert.New(t)

	creator := mock.NewMockObjectCreator(
		model.RemoteResponse{StatusCode: 401},
	)
	exchanger := mock.NewMockTokenExchanger()
	exchanger.FailWith(errors.NewAuthExchange(403, "identity endpoint rejected the exchange"))
	credentials := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "stale-token")
	dispatcher := NewDispatcher(creator, credentials, false)

	outcome := dispatcher.Send(context.Background(), testPayload("allow-a", "domains"))

	assertion.Equal(model.OutcomeFailed, outcome.Status)
	assertion.Equal(model.CauseAuthRefresh, outcome.Reason)
	assertion.Contains(outcome.Detail, "identity endpoint rejected the exchange")
	assertion.Equal(1, creator.CallCount())
}

func TestDispatcherDryRun(t *testing.T) {
	assertion := assert.New(t)

	creator := mock.NewMockObjectCreator()
	exchanger := mock.NewMockTokenExchanger()
	credentials := NewCredentialManager(exchanger, mock.NewMockCredentialStore(), "api-key", "")
	dispatcher := NewDispatcher(creator, credentials, true)

	payload := testPayload("allow-a", "domains")
	outcome := dispatcher.Send(context.Background(), payload)

	// A preview never reaches the controller or the identity endpoint.
	assertion.Equal(0, creator.CallCount())
	assertion.Equal(0, exchanger.Calls())

	assertion.Equal(model.OutcomeCreated, outcome.Status)
	assertion.Equal(model.ReasonWouldCreate, outcome.Reason)
	assertion.True(outcome.DryRun)
	if assertion.NotNil(outcome.Payload) {
		assertion.Equal(payload.Body, outcome.Payload.Body)
	}
}
