// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package objecttype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ztbtools/objectsync/pkg/errors"
)

// resetRegistry restores the builtin-only registry between tests
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = map[string]Definition{
		Domains: {Name: Domains, MemberField: "fqdn"},
		Network: {Name: Network, MemberField: "ip_prefix_local"},
	}
}

func TestLookupBuiltins(t *testing.T) {
	resetRegistry()

	tests := []struct {
		name          string
		typeName      string
		expectedField string
		expectedOK    bool
	}{
		{
			name:          "domains maps to fqdn",
			typeName:      "domains",
			expectedField: "fqdn",
			expectedOK:    true,
		},
		{
			name:          "network maps to ip_prefix_local",
			typeName:      "network",
			expectedField: "ip_prefix_local",
			expectedOK:    true,
		},
		{
			name:          "lookup is case-insensitive",
			typeName:      " Domains ",
			expectedField: "fqdn",
			expectedOK:    true,
		},
		{
			name:       "unknown type is not registered",
			typeName:   "url_lists",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := Lookup(tt.typeName)
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedField, def.MemberField)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		def         Definition
		expectError bool
		lookupName  string
		lookupField string
	}{
		{
			name:        "new type becomes resolvable",
			def:         Definition{Name: "url_lists", MemberField: "url"},
			lookupName:  "url_lists",
			lookupField: "url",
		},
		{
			name:        "name is normalized to lowercase",
			def:         Definition{Name: "  URL_Lists ", MemberField: "url"},
			lookupName:  "url_lists",
			lookupField: "url",
		},
		{
			name:        "existing definition is replaced",
			def:         Definition{Name: "domains", MemberField: "fqdn_remote"},
			lookupName:  "domains",
			lookupField: "fqdn_remote",
		},
		{
			name:        "empty name is rejected",
			def:         Definition{Name: "  ", MemberField: "url"},
			expectError: true,
		},
		{
			name:        "empty member field is rejected",
			def:         Definition{Name: "url_lists", MemberField: ""},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRegistry()

			err := Register(tt.def)
			if tt.expectError {
				assert.Error(t, err)
				var validationErr errors.Validation
				assert.ErrorAs(t, err, &validationErr)
				return
			}

			assert.NoError(t, err)
			def, ok := Lookup(tt.lookupName)
			assert.True(t, ok)
			assert.Equal(t, tt.lookupField, def.MemberField)
		})
	}
}

func TestNames(t *testing.T) {
	resetRegistry()

	assert.Equal(t, []string{"domains", "network"}, Names())

	assert.NoError(t, Register(Definition{Name: "asn_lists", MemberField: "asn"}))
	assert.Equal(t, []string{"asn_lists", "domains", "network"}, Names())
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError bool
		lookupName  string
		lookupField string
	}{
		{
			name: "valid file extends the registry",
			content: `types:
  - name: url_lists
    member_field: url
`,
			lookupName:  "url_lists",
			lookupField: "url",
		},
		{
			name: "valid file can override a builtin",
			content: `types:
  - name: domains
    member_field: fqdn_remote
`,
			lookupName:  "domains",
			lookupField: "fqdn_remote",
		},
		{
			name:        "file without types is rejected",
			content:     "types: []\n",
			expectError: true,
		},
		{
			name:        "malformed yaml is rejected",
			content:     "types: [oops",
			expectError: true,
		},
		{
			name: "definition without member field is rejected",
			content: `types:
  - name: url_lists
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRegistry()

			path := filepath.Join(t.TempDir(), "types.yaml")
			assert.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			err := LoadFile(path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			def, ok := Lookup(tt.lookupName)
			assert.True(t, ok)
			assert.Equal(t, tt.lookupField, def.MemberField)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	resetRegistry()

	err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	var validationErr errors.Validation
	assert.ErrorAs(t, err, &validationErr)
}
