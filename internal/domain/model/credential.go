// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

import "time"

// Credential represents a bearer credential for the controller
type Credential struct {
	// Token value, empty when no credential is held
	Token string
	// ObtainedAt records when the token was acquired
	ObtainedAt time.Time
}
