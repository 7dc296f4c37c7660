// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// RunAggregator collects per-object outcomes into the final run summary.
type RunAggregator struct {
	runID     string
	startedAt time.Time
	dryRun    bool

	outcomes []model.Outcome
	created  int
	skipped  int
	failed   int
}

// NewRunAggregator starts an empty summary for the given run.
func NewRunAggregator(runID string, dryRun bool) *RunAggregator {
	return &RunAggregator{
		runID:     runID,
		startedAt: time.Now(),
		dryRun:    dryRun,
	}
}

// Record folds one outcome into the summary.
func (a *RunAggregator) Record(ctx context.Context, outcome model.Outcome) {
	a.outcomes = append(a.outcomes, outcome)

	switch outcome.Status {
	case model.OutcomeCreated:
		a.created++
	case model.OutcomeSkipped:
		a.skipped++
	case model.OutcomeFailed:
		a.failed++
	}

	slog.DebugContext(ctx, "outcome recorded",
		"name", outcome.Name,
		"type", outcome.Type,
		"status", outcome.Status,
	)
}

// Summary returns the final run summary. The outcome slice is copied so the
// summary stays stable if the aggregator keeps recording.
func (a *RunAggregator) Summary() model.RunSummary {
	outcomes := make([]model.Outcome, len(a.outcomes))
	copy(outcomes, a.outcomes)

	return model.RunSummary{
		RunID:     a.runID,
		StartedAt: a.startedAt,
		Duration:  time.Since(a.startedAt),
		Created:   a.created,
		Skipped:   a.skipped,
		Failed:    a.failed,
		Outcomes:  outcomes,
		DryRun:    a.dryRun,
	}
}
