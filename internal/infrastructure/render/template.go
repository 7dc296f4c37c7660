// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package render

const objectPayloadSource = `{
  "name": {{ .Name | quote }},
  "type": {{ .Type | quote }},
  "owner": "user",
  "autonomous": false,
  "member_attributes": {
    {{ .MemberField | quote }}: [
      {{- $first := true -}}
      {{- range .Members -}}
      {{- if $first -}}
      {{- $first = false -}}
      {{- else }},
      {{- end }}
      {{ . | quote }}
      {{- end }}
    ]
  }
}`
