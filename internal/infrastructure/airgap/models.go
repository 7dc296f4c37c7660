// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package airgap

// loginRequest is the request body for the identity endpoint
type loginRequest struct {
	APIKey string `json:"api_key"`
}

// loginResponse is the response body from the identity endpoint
type loginResponse struct {
	Token string `json:"token"`
}
