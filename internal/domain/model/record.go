// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

// Record represents one validated input row before consolidation
type Record struct {
	// Object name the row contributes to
	Name string
	// Object type, lowercased
	Type string
	// Items carried by this row, in input order
	Items []string
	// Row is the 1-based input position, counting the header as row 1
	Row int
}
