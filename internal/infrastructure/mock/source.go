// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// MockRecordSource is a mock implementation of RecordSource for testing
type MockRecordSource struct {
	records []model.Record
	err     error
}

// NewMockRecordSource creates a mock source that serves the given records
func NewMockRecordSource(records ...model.Record) *MockRecordSource {
	return &MockRecordSource{records: records}
}

// FailWith makes Load fail with err
func (m *MockRecordSource) FailWith(err error) {
	m.err = err
}

// Load implements the RecordSource interface with canned records
func (m *MockRecordSource) Load(ctx context.Context) ([]model.Record, error) {
	slog.DebugContext(ctx, "loading mock records",
		"records", len(m.records),
	)

	if m.err != nil {
		return nil, m.err
	}

	return append([]model.Record(nil), m.records...), nil
}
