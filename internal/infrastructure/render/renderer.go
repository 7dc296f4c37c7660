// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/domain/objecttype"
	"github.com/ztbtools/objectsync/pkg/errors"
)

var objectPayloadTemplate = template.Must(
	template.New("objectPayload").
		Funcs(template.FuncMap{
			"quote": strconv.Quote,
		}).
		Parse(objectPayloadSource))

// Context is the data a payload template renders with. Custom template
// files see exactly the same fields as the built-in template.
type Context struct {
	Name        string
	Type        string
	MemberField string
	Members     []string
}

// Renderer implements the PayloadRenderer port on top of text templates.
// The member field for a type always comes from the registry, never from
// the template, so an unmapped type fails before any rendering happens.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a Renderer using the built-in payload template
func NewRenderer() *Renderer {
	return &Renderer{tmpl: objectPayloadTemplate}
}

// NewRendererFromFile creates a Renderer from a custom template file
func NewRendererFromFile(path string) (*Renderer, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewValidation(fmt.Sprintf("reading template %s", path), err)
	}

	tmpl, err := template.New(filepath.Base(path)).
		Funcs(template.FuncMap{
			"quote": strconv.Quote,
		}).
		Parse(string(source))
	if err != nil {
		return nil, errors.NewValidation(fmt.Sprintf("parsing template %s", path), err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the payload for one object definition
func (r *Renderer) Render(ctx context.Context, group model.ObjectGroup) (model.Payload, error) {
	def, ok := objecttype.Lookup(group.Type)
	if !ok {
		return model.Payload{}, errors.NewTemplateRender(
			fmt.Sprintf("object type %q has no member-field mapping (registered: %s)",
				group.Type, strings.Join(objecttype.Names(), ", ")))
	}

	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, Context{
		Name:        group.Name,
		Type:        group.Type,
		MemberField: def.MemberField,
		Members:     group.Members,
	})
	if err != nil {
		return model.Payload{}, errors.NewTemplateRender(
			fmt.Sprintf("rendering payload for %q", group.Name), err)
	}

	payload, err := parsePayload(buf.Bytes(), def.MemberField, group)
	if err != nil {
		return model.Payload{}, err
	}

	slog.DebugContext(ctx, "payload rendered",
		"name", group.Name,
		"type", group.Type,
		"bytes", buf.Len(),
	)

	return payload, nil
}

// payloadDoc is the parsed shape used to validate rendered output
type payloadDoc struct {
	Name             string              `json:"name"`
	Type             string              `json:"type"`
	Owner            string              `json:"owner"`
	Autonomous       bool                `json:"autonomous"`
	MemberAttributes map[string][]string `json:"member_attributes"`
}

// parsePayload checks that the rendered output is a valid payload document
// and that the member list survived the template intact. The bytes that go
// on the wire are the template output itself, not a re-serialization.
func parsePayload(body []byte, memberField string, group model.ObjectGroup) (model.Payload, error) {
	var doc payloadDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return model.Payload{}, errors.NewTemplateRender(
			fmt.Sprintf("rendered payload for %q did not parse as a payload document", group.Name), err)
	}

	if !equalMembers(doc.MemberAttributes[memberField], group.Members) {
		return model.Payload{}, errors.NewTemplateRender(
			fmt.Sprintf("rendered payload for %q does not carry its %d members under %q",
				group.Name, len(group.Members), memberField))
	}

	return model.Payload{
		Name:             doc.Name,
		Type:             doc.Type,
		Owner:            doc.Owner,
		Autonomous:       doc.Autonomous,
		MemberAttributes: doc.MemberAttributes,
		Body:             body,
	}, nil
}

// equalMembers compares member lists as multisets: same elements, same
// counts. Order changes alone do not fail a render.
func equalMembers(rendered, expected []string) bool {
	if len(rendered) != len(expected) {
		return false
	}

	counts := make(map[string]int, len(expected))
	for _, member := range expected {
		counts[member]++
	}
	for _, member := range rendered {
		counts[member]--
		if counts[member] < 0 {
			return false
		}
	}

	return true
}
