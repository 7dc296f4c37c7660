// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/domain/port"
	"github.com/ztbtools/objectsync/pkg/log"
)

// ObjectSynchronizer defines the interface for one bulk sync run
// This abstraction keeps the command layer away from the pipeline wiring
type ObjectSynchronizer interface {
	// Sync ingests the configured input and pushes every object definition
	Sync(ctx context.Context) (model.RunSummary, error)
}

// ObjectSync drives a run from raw records to the final summary
// It depends on abstractions (interfaces) rather than concrete implementations
type ObjectSync struct {
	source      port.RecordSource
	renderer    port.PayloadRenderer
	dispatcher  *Dispatcher
	credentials *CredentialManager
}

// Sync runs the full pipeline: load, consolidate, render, deliver, summarize.
// Load and consolidation errors abort the run; per-object failures are
// folded into the summary and the run keeps going.
func (s *ObjectSync) Sync(ctx context.Context) (model.RunSummary, error) {

	runID := uuid.New().String()
	ctx = log.AppendCtx(ctx, slog.String("run_id", runID))

	slog.InfoContext(ctx, "starting object sync",
		"dry_run", s.dispatcher.dryRun,
	)

	records, err := s.source.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "object sync failed while loading records",
			"error", err,
		)
		return model.RunSummary{}, err
	}

	groups, err := GroupRecords(ctx, records)
	if err != nil {
		slog.ErrorContext(ctx, "object sync failed while consolidating records",
			"error", err,
		)
		return model.RunSummary{}, err
	}

	aggregator := NewRunAggregator(runID, s.dispatcher.dryRun)

	if len(groups) == 0 {
		slog.InfoContext(ctx, "nothing to do, input holds no object definitions")
		return aggregator.Summary(), nil
	}

	// A preview never talks to the controller, so it needs no credential.
	if !s.dispatcher.dryRun {
		if err := s.credentials.EnsureValid(ctx); err != nil {
			slog.ErrorContext(ctx, "initial credential exchange failed",
				"error", err,
			)
			return model.RunSummary{}, err
		}
	}

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "object sync interrupted",
				"recorded", len(aggregator.outcomes),
				"remaining", len(groups)-len(aggregator.outcomes),
			)
			return aggregator.Summary(), err
		}

		payload, err := s.renderer.Render(ctx, group)
		if err != nil {
			slog.ErrorContext(ctx, "payload render failed",
				"name", group.Name,
				"type", group.Type,
				"error", err,
			)
			aggregator.Record(ctx, model.Outcome{
				Name:   group.Name,
				Type:   group.Type,
				Status: model.OutcomeFailed,
				Reason: model.CauseTemplateError,
				Detail: err.Error(),
			})
			continue
		}

		// Delegate delivery to the dispatcher
		aggregator.Record(ctx, s.dispatcher.Send(ctx, payload))
	}

	summary := aggregator.Summary()

	slog.InfoContext(ctx, "object sync completed",
		"created", summary.Created,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", summary.Duration.String(),
	)

	return summary, nil
}

// NewObjectSync creates a new ObjectSync instance
func NewObjectSync(source port.RecordSource, renderer port.PayloadRenderer, dispatcher *Dispatcher, credentials *CredentialManager) ObjectSynchronizer {
	return &ObjectSync{
		source:      source,
		renderer:    renderer,
		dispatcher:  dispatcher,
		credentials: credentials,
	}
}
