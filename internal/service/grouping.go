// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/pkg/errors"
)

// GroupRecords consolidates validated records into object definitions.
// Rows sharing (name, type) merge into one group; members keep first-seen
// order with duplicates dropped; groups keep the order of their first row.
func GroupRecords(ctx context.Context, records []model.Record) ([]model.ObjectGroup, error) {
	type groupKey struct {
		name string
		typ  string
	}

	index := make(map[groupKey]int)
	seen := make(map[groupKey]map[string]struct{})
	groups := make([]model.ObjectGroup, 0, len(records))

	for _, record := range records {
		key := groupKey{name: record.Name, typ: record.Type}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			seen[key] = make(map[string]struct{})
			groups = append(groups, model.ObjectGroup{
				Name: record.Name,
				Type: record.Type,
			})
		}

		for _, item := range record.Items {
			if _, dup := seen[key][item]; dup {
				continue
			}
			seen[key][item] = struct{}{}
			groups[i].Members = append(groups[i].Members, item)
		}
	}

	// Every record carries at least one item, so this only fires for
	// sources that bypass row validation.
	for _, group := range groups {
		if len(group.Members) == 0 {
			return nil, errors.NewEmptyObjectGroup(
				fmt.Sprintf("object %q (%s) has no members", group.Name, group.Type))
		}
	}

	slog.DebugContext(ctx, "records consolidated",
		"records", len(records),
		"groups", len(groups),
	)

	return groups, nil
}
