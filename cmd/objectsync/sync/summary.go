// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

// printPreviews writes every rendered payload as an indented JSON block,
// in run order. Outcomes without a payload (render failures) are skipped.
func printPreviews(w io.Writer, summary model.RunSummary, enabled bool) {
	if !enabled {
		return
	}

	for _, outcome := range summary.Outcomes {
		if outcome.Payload == nil {
			continue
		}

		body := outcome.Payload.Body
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err == nil {
			body = pretty.Bytes()
		}

		fmt.Fprintln(w, "\n--- payload --------------------------------")
		fmt.Fprintln(w, string(body))
		fmt.Fprintln(w, "-------------------------------------------")
	}
}

// printSummary writes the closing summary block, one detail line per
// failed object.
func printSummary(w io.Writer, summary model.RunSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "== Summary ==")

	if summary.DryRun {
		fmt.Fprintf(w, "Previewed (dry-run): %d\n", summary.Created)
	} else {
		fmt.Fprintf(w, "Created: %d\n", summary.Created)
	}
	fmt.Fprintf(w, "Skipped: %d\n", summary.Skipped)
	fmt.Fprintf(w, "Errors:  %d\n", summary.Failed)

	for _, outcome := range summary.Outcomes {
		if outcome.Status != model.OutcomeFailed {
			continue
		}
		fmt.Fprintf(w, "  - '%s' (%s): %s: %s\n", outcome.Name, outcome.Type, outcome.Reason, outcome.Detail)
	}
}
