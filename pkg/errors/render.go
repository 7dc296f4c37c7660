// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// TemplateRender represents a failure to produce a valid payload from a
// payload template, including unmapped object types and output that does
// not parse as JSON.
type TemplateRender struct {
	base
}

// Error returns the error message for TemplateRender.
func (t TemplateRender) Error() string {
	return t.error()
}

// NewTemplateRender creates a new TemplateRender error with the provided message.
func NewTemplateRender(message string, err ...error) TemplateRender {
	return TemplateRender{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
