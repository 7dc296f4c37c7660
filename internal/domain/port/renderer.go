// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// PayloadRenderer defines the behavior for turning a consolidated object
// definition into the JSON document sent to the controller
// This abstraction allows different rendering implementations (templates, etc.)
// without the domain layer knowing about specific implementations
type PayloadRenderer interface {
	// Render produces the payload for one object definition, failing closed
	// when the object type has no member-field mapping
	Render(ctx context.Context, group model.ObjectGroup) (model.Payload, error)
}
