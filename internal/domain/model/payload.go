// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

// Payload represents a rendered object-creation request
type Payload struct {
	// Object name
	Name string
	// Object type
	Type string
	// Owner of the object on the controller
	Owner string
	// Autonomous marks controller-managed objects
	Autonomous bool
	// MemberAttributes maps the member field for the type to its values
	MemberAttributes map[string][]string
	// Body is the exact JSON document that goes on the wire
	Body []byte
}
