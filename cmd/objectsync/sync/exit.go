// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package sync

import (
	"fmt"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

const (
	exitCodeSuccess  = 0
	exitCodeAborted  = 1
	exitCodeFailures = 2
)

type syncExitError struct {
	code int
	msg  string
}

func (e syncExitError) Error() string { return e.msg }
func (e syncExitError) ExitCode() int { return e.code }

// evaluateExit maps the run result onto the process exit contract: nil for
// a run whose objects all ended Created or Skipped, code 2 for a completed
// run with failed objects, code 1 for a run that aborted early.
func evaluateExit(summary model.RunSummary, runErr error) error {
	if runErr != nil {
		return syncExitError{code: exitCodeAborted, msg: runErr.Error()}
	}
	if summary.Failed > 0 {
		return syncExitError{
			code: exitCodeFailures,
			msg:  fmt.Sprintf("completed with %d failed objects", summary.Failed),
		}
	}
	return nil
}
