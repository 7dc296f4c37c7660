// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultCSVPath is where the sync command looks for input when no flag is given
	DefaultCSVPath = "objects.csv"

	// DefaultEnvFile backs credential persistence between runs
	DefaultEnvFile = ".env"

	// BodySnippetLimit caps how much of a controller response body is kept in
	// outcome details and log lines
	BodySnippetLimit = 300
)
