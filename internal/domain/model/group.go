// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package model

// ObjectGroup represents one consolidated object definition, built from all
// input rows sharing the same name and type
type ObjectGroup struct {
	// Object name
	Name string
	// Object type
	Type string
	// Members in first-seen order, duplicates removed
	Members []string
}
