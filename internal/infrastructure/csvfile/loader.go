// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/domain/objecttype"
	errs "github.com/ztbtools/objectsync/pkg/errors"
)

// Input column names, matched case-sensitively.
const (
	headerName  = "name"
	headerType  = "type"
	headerItems = "items"
)

// Loader reads object records from a CSV file. The first malformed row
// aborts the whole load so a partial sync never starts from bad input.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the given file path
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates every input row
func (l *Loader) Load(ctx context.Context) ([]model.Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, errs.NewValidation(fmt.Sprintf("opening %s", l.path), err)
	}
	defer file.Close()

	records, err := l.parse(ctx, csv.NewReader(file))
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "csv input loaded",
		"path", l.path,
		"records", len(records),
	)

	return records, nil
}

func (l *Loader) parse(ctx context.Context, reader *csv.Reader) ([]model.Record, error) {
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errs.NewValidation("input has no header row")
	}
	if err != nil {
		return nil, errs.NewValidation("reading csv header", err)
	}

	index := headerIndex(header)
	if err := validateHeader(index); err != nil {
		return nil, err
	}

	var records []model.Record
	row := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, errs.NewMalformedRecord(row, "malformed csv row", err)
			}
			return nil, errs.NewUnexpected("reading csv input", err)
		}

		record, err := buildRecord(index, fields, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// buildRecord validates one data row and extracts its members. The items
// column wins over a per-type member column when both carry values.
func buildRecord(index map[string]int, fields []string, row int) (model.Record, error) {
	name := cell(fields, index, headerName)
	if name == "" {
		return model.Record{}, errs.NewMalformedRecord(row, "name is required")
	}

	typeName := strings.ToLower(cell(fields, index, headerType))
	if typeName == "" {
		return model.Record{}, errs.NewMalformedRecord(row, "type is required")
	}

	def, ok := objecttype.Lookup(typeName)
	if !ok {
		return model.Record{}, errs.NewMalformedRecord(row,
			fmt.Sprintf("unknown object type %q (registered: %s)", typeName, strings.Join(objecttype.Names(), ", ")))
	}

	items := splitItems(cell(fields, index, headerItems))
	if len(items) == 0 {
		if value := cell(fields, index, def.MemberField); value != "" {
			items = []string{value}
		}
	}
	if len(items) == 0 {
		return model.Record{}, errs.NewMalformedRecord(row,
			fmt.Sprintf("no member value in %q or %q", headerItems, def.MemberField))
	}

	return model.Record{
		Name:  name,
		Type:  typeName,
		Items: items,
		Row:   row,
	}, nil
}

// headerIndex maps trimmed column names to their positions
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.TrimSpace(column)] = i
	}
	return index
}

// validateHeader checks that the input can yield records at all: name and
// type columns plus at least one column members can come from
func validateHeader(index map[string]int) error {
	for _, column := range []string{headerName, headerType} {
		if _, ok := index[column]; !ok {
			return errs.NewValidation(fmt.Sprintf("input is missing required column %q", column))
		}
	}

	if _, ok := index[headerItems]; ok {
		return nil
	}
	for _, name := range objecttype.Names() {
		def, found := objecttype.Lookup(name)
		if !found {
			continue
		}
		if _, ok := index[def.MemberField]; ok {
			return nil
		}
	}

	return errs.NewValidation(
		fmt.Sprintf("input needs an %q column or a member column for a registered type", headerItems))
}

// cell returns the trimmed value of a column, or empty when the column is
// absent or the row is short
func cell(fields []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// splitItems breaks an items cell on ";" and drops blank entries
func splitItems(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ";")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}

	return items
}
