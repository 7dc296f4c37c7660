// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const (
	slogFields ctxKey = "slog_fields"

	debug = "debug"
	warn  = "warn"
	info  = "info"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(v, attr)
		return context.WithValue(parent, slogFields, v)
	}

	v := []slog.Attr{}
	v = append(v, attr)
	return context.WithValue(parent, slogFields, v)
}

// Init sets the structured log behavior for the process. Diagnostics go to
// stderr so that stdout stays reserved for payload previews and the run
// summary. The verbose flag forces debug level; otherwise LOG_LEVEL applies.
func Init(verbose bool) {
	logOptions := &slog.HandlerOptions{
		Level: resolveLevel(verbose),
	}

	if os.Getenv("LOG_ADD_SOURCE") == "true" {
		logOptions.AddSource = true
	}

	var h slog.Handler
	switch os.Getenv("LOG_FORMAT") {
	case "json":
		h = slog.NewJSONHandler(os.Stderr, logOptions)
	default:
		h = slog.NewTextHandler(os.Stderr, logOptions)
	}

	slog.SetDefault(slog.New(contextHandler{h}))
}

func resolveLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	switch os.Getenv("LOG_LEVEL") {
	case debug:
		return slog.LevelDebug
	case warn:
		return slog.LevelWarn
	case info:
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
