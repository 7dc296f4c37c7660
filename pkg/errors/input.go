// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

// MalformedRecord reports an input row that cannot become part of an
// object definition. The row number counts the header as row 1, so the
// first data row is row 2.
type MalformedRecord struct {
	base
	row int
}

// Error returns the error message for MalformedRecord.
func (m MalformedRecord) Error() string {
	return m.error()
}

// Row returns the 1-based input row the error refers to.
func (m MalformedRecord) Row() int {
	return m.row
}

// NewMalformedRecord creates a new MalformedRecord error for the given row.
func NewMalformedRecord(row int, message string, err ...error) MalformedRecord {
	return MalformedRecord{
		base: base{
			message: fmt.Sprintf("row %d: %s", row, message),
			err:     errors.Join(err...),
		},
		row: row,
	}
}

// EmptyObjectGroup reports a consolidated object definition that ended up
// with no members, which the remote endpoint would reject.
type EmptyObjectGroup struct {
	base
}

// Error returns the error message for EmptyObjectGroup.
func (e EmptyObjectGroup) Error() string {
	return e.error()
}

// NewEmptyObjectGroup creates a new EmptyObjectGroup error with the provided message.
func NewEmptyObjectGroup(message string, err ...error) EmptyObjectGroup {
	return EmptyObjectGroup{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
