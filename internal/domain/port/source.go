// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// RecordSource defines the behavior for loading input records
// This abstraction allows different input implementations (CSV file, etc.)
// without the domain layer knowing about specific implementations
type RecordSource interface {
	// Load reads and validates every input row, failing on the first
	// malformed one
	Load(ctx context.Context) ([]model.Record, error)
}
