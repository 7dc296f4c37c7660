// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/domain/port"
	"github.com/ztbtools/objectsync/pkg/constants"
)

// Dispatcher delivers one rendered payload to the controller and folds the
// response into an outcome. A rejected credential is refreshed and the
// delivery retried exactly once; a second rejection fails the object.
type Dispatcher struct {
	creator     port.ObjectCreator
	credentials port.CredentialProvider
	dryRun      bool
}

// NewDispatcher returns a dispatcher ready to deliver payloads. With dryRun
// set it previews instead of delivering.
func NewDispatcher(creator port.ObjectCreator, credentials port.CredentialProvider, dryRun bool) *Dispatcher {
	return &Dispatcher{
		creator:     creator,
		credentials: credentials,
		dryRun:      dryRun,
	}
}

// Send delivers the payload and reports the terminal outcome. It never
// returns an error; every failure mode is an Outcome so one bad object
// cannot end the run.
func (d *Dispatcher) Send(ctx context.Context, payload model.Payload) model.Outcome {
	if d.dryRun {
		slog.DebugContext(ctx, "dry run, payload not delivered",
			"name", payload.Name,
			"type", payload.Type,
		)
		return model.Outcome{
			Name:    payload.Name,
			Type:    payload.Type,
			Status:  model.OutcomeCreated,
			Reason:  model.ReasonWouldCreate,
			Payload: &payload,
			DryRun:  true,
		}
	}

	response, err := d.creator.CreateObject(ctx, payload.Body, d.credentials.Current().Token)
	if err != nil {
		return d.failed(ctx, payload, model.CauseTransportError, err.Error())
	}

	if response.StatusCode == http.StatusUnauthorized {
		slog.InfoContext(ctx, "credential rejected, refreshing and retrying once",
			"name", payload.Name,
			"type", payload.Type,
		)

		credential, err := d.credentials.Refresh(ctx)
		if err != nil {
			return d.failed(ctx, payload, model.CauseAuthRefresh, err.Error())
		}

		response, err = d.creator.CreateObject(ctx, payload.Body, credential.Token)
		if err != nil {
			return d.failed(ctx, payload, model.CauseTransportError, err.Error())
		}

		if response.StatusCode == http.StatusUnauthorized {
			return d.failed(ctx, payload, model.CausePersistentAuth,
				fmt.Sprintf("status %d: %s", response.StatusCode, bodySnippet(response.Body)))
		}
	}

	return d.interpret(ctx, payload, response)
}

// interpret maps a completed controller exchange onto an outcome.
func (d *Dispatcher) interpret(ctx context.Context, payload model.Payload, response *model.RemoteResponse) model.Outcome {
	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		slog.DebugContext(ctx, "object created",
			"name", payload.Name,
			"type", payload.Type,
			"status", response.StatusCode,
		)
		return model.Outcome{
			Name:    payload.Name,
			Type:    payload.Type,
			Status:  model.OutcomeCreated,
			Detail:  fmt.Sprintf("status %d", response.StatusCode),
			Payload: &payload,
		}

	case response.StatusCode == http.StatusConflict:
		slog.DebugContext(ctx, "object already exists",
			"name", payload.Name,
			"type", payload.Type,
		)
		return model.Outcome{
			Name:    payload.Name,
			Type:    payload.Type,
			Status:  model.OutcomeSkipped,
			Reason:  model.ReasonAlreadyExists,
			Detail:  fmt.Sprintf("status %d", response.StatusCode),
			Payload: &payload,
		}

	case response.StatusCode >= 500:
		return d.failed(ctx, payload, model.CauseTransportError,
			fmt.Sprintf("status %d: %s", response.StatusCode, bodySnippet(response.Body)))

	default:
		return d.failed(ctx, payload, model.CauseClientError,
			fmt.Sprintf("status %d: %s", response.StatusCode, bodySnippet(response.Body)))
	}
}

func (d *Dispatcher) failed(ctx context.Context, payload model.Payload, reason, detail string) model.Outcome {
	slog.ErrorContext(ctx, "object not created",
		"name", payload.Name,
		"type", payload.Type,
		"reason", reason,
		"detail", detail,
	)
	return model.Outcome{
		Name:    payload.Name,
		Type:    payload.Type,
		Status:  model.OutcomeFailed,
		Reason:  reason,
		Detail:  detail,
		Payload: &payload,
	}
}

// bodySnippet flattens and truncates a response body for outcome details
func bodySnippet(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > constants.BodySnippetLimit {
		s = s[:constants.BodySnippetLimit]
	}
	return s
}
