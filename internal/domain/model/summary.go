// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

import "time"

// RunSummary represents the final account of one synchronization run
type RunSummary struct {
	// RunID correlates the summary with the run's log lines
	RunID string
	// StartedAt is when the run began
	StartedAt time.Time
	// Duration of the whole run
	Duration time.Duration
	// Created counts objects the controller accepted, or previews in a dry run
	Created int
	// Skipped counts objects that already existed
	Skipped int
	// Failed counts objects that were not created
	Failed int
	// Outcomes holds one entry per object definition, in dispatch order
	Outcomes []Outcome
	// DryRun marks summaries of runs that never reached the controller
	DryRun bool
}
