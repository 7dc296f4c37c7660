// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package constants

const (
	// HeaderAuthorization carries the bearer credential on calls to the controller
	HeaderAuthorization = "Authorization"
	// HeaderRequestID correlates one HTTP exchange across client and controller logs
	HeaderRequestID = "X-REQUEST-ID"
	// BearerPrefix is prepended to the token in the Authorization header
	BearerPrefix = "Bearer "
	// ContentTypeJSON is the media type for every request body this tool sends
	ContentTypeJSON = "application/json"
	// AcceptDefault matches what the controller's own clients send
	AcceptDefault = "application/json, text/plain, */*"
	// UserAgent identifies this tool to the controller
	UserAgent = "objectsync"
)
