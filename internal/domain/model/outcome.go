// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

// OutcomeStatus classifies how one object definition ended up
type OutcomeStatus string

const (
	// OutcomeCreated means the controller accepted the object, or a dry run previewed it
	OutcomeCreated OutcomeStatus = "created"
	// OutcomeSkipped means the object already existed
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeFailed means the object was not created
	OutcomeFailed OutcomeStatus = "failed"
)

// Failure causes as they appear in outcome reasons and the run summary.
const (
	CauseClientError    = "client error"
	CauseTransportError = "transport error"
	CauseAuthRefresh    = "auth refresh failed"
	CausePersistentAuth = "persistent auth failure"
	CauseTemplateError  = "template error"
	ReasonAlreadyExists = "already exists"
	ReasonWouldCreate   = "would create"
)

// Outcome represents the terminal state of one object definition in a run
type Outcome struct {
	// Object name
	Name string
	// Object type
	Type string
	// Status of the attempt
	Status OutcomeStatus
	// Reason is the short cause, one of the constants above for non-2xx paths
	Reason string
	// Detail carries a truncated controller response body or error text
	Detail string
	// Payload that was (or would have been) sent, kept for previews
	Payload *Payload
	// DryRun marks outcomes that never reached the controller
	DryRun bool
}
