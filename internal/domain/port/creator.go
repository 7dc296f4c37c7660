// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// ObjectCreator defines the behavior for submitting an object definition to
// the controller
// This abstraction allows different controller implementations (HTTP API,
// mock, etc.) without the domain layer knowing about specific implementations
type ObjectCreator interface {
	// CreateObject posts one payload body using the given bearer credential.
	// Any completed exchange comes back as a RemoteResponse; an error means
	// the exchange never completed at the HTTP level.
	CreateObject(ctx context.Context, body []byte, bearer string) (*model.RemoteResponse, error)
}
