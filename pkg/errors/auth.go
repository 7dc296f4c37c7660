// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// AuthExchange represents a failed API-key-for-bearer exchange against the
// identity endpoint. A zero status code means the exchange never completed
// at the HTTP level.
type AuthExchange struct {
	base
	statusCode int
}

// Error returns the error message for AuthExchange.
func (a AuthExchange) Error() string {
	return a.error()
}

// StatusCode returns the HTTP status the identity endpoint answered with.
func (a AuthExchange) StatusCode() int {
	return a.statusCode
}

// NewAuthExchange creates a new AuthExchange error with the provided message.
func NewAuthExchange(statusCode int, message string, err ...error) AuthExchange {
	return AuthExchange{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
		statusCode: statusCode,
	}
}
