// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package sync

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ztbtools/objectsync/internal/domain/model"
)

func TestPrintSummary(t *testing.T) {
	summary := model.RunSummary{
		Created: 2,
		Skipped: 1,
		Failed:  1,
		Outcomes: []model.Outcome{
			{Name: "allow-a", Type: "domains", Status: model.OutcomeCreated},
			{Name: "allow-b", Type: "domains", Status: model.OutcomeCreated},
			{Name: "blocklist", Type: "network", Status: model.OutcomeSkipped, Reason: model.ReasonAlreadyExists},
			{Name: "bad", Type: "domains", Status: model.OutcomeFailed, Reason: model.CauseClientError, Detail: "status 422: bad member"},
		},
	}

	var out bytes.Buffer
	printSummary(&out, summary)
	got := out.String()

	for _, want := range []string{
		"== Summary ==",
		"Created: 2",
		"Skipped: 1",
		"Errors:  1",
		"  - 'bad' (domains): client error: status 422: bad member",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "allow-a") {
		t.Errorf("summary should not detail successful objects:\n%s", got)
	}
}

func TestPrintSummary_DryRunLabel(t *testing.T) {
	summary := model.RunSummary{
		Created: 3,
		DryRun:  true,
	}

	var out bytes.Buffer
	printSummary(&out, summary)
	got := out.String()

	if !strings.Contains(got, "Previewed (dry-run): 3") {
		t.Errorf("dry-run summary missing preview line:\n%s", got)
	}
	if strings.Contains(got, "Created:") {
		t.Errorf("dry-run summary should relabel the created line:\n%s", got)
	}
}

func TestPrintPreviews(t *testing.T) {
	payload := &model.Payload{
		Name: "allow-a",
		Type: "domains",
		Body: []byte(`{"name": "allow-a", "type": "domains"}`),
	}
	summary := model.RunSummary{
		Outcomes: []model.Outcome{
			{Name: "allow-a", Type: "domains", Status: model.OutcomeCreated, Payload: payload},
			{Name: "broken", Type: "ports", Status: model.OutcomeFailed, Reason: model.CauseTemplateError},
		},
	}

	var out bytes.Buffer
	printPreviews(&out, summary, true)
	got := out.String()

	if !strings.Contains(got, "--- payload ---") {
		t.Errorf("previews missing payload block:\n%s", got)
	}
	if !strings.Contains(got, "\"name\": \"allow-a\"") {
		t.Errorf("previews missing payload body:\n%s", got)
	}
	if strings.Count(got, "--- payload ---") != 1 {
		t.Errorf("outcomes without a payload should not print a block:\n%s", got)
	}
}

func TestPrintPreviews_Disabled(t *testing.T) {
	summary := model.RunSummary{
		Outcomes: []model.Outcome{
			{Name: "allow-a", Status: model.OutcomeCreated, Payload: &model.Payload{Body: []byte(`{}`)}},
		},
	}

	var out bytes.Buffer
	printPreviews(&out, summary, false)

	if out.Len() != 0 {
		t.Errorf("disabled previews should print nothing, got:\n%s", out.String())
	}
}
