// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

// RemoteResponse represents a completed HTTP exchange with the controller,
// whatever the status code. Transport failures never become one.
type RemoteResponse struct {
	// StatusCode answered by the controller
	StatusCode int
	// Body of the response, possibly empty
	Body []byte
}
