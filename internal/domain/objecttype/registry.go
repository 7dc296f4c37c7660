// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package objecttype

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ztbtools/objectsync/pkg/errors"
)

// Builtin object types. Anything else must be registered before use.
const (
	Domains = "domains"
	Network = "network"
)

// Definition binds an object type to the payload field its members populate
type Definition struct {
	// Name of the object type, stored lowercased
	Name string `yaml:"name"`
	// MemberField is the member-attribute key in the rendered payload
	MemberField string `yaml:"member_field"`
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Definition{
		Domains: {Name: Domains, MemberField: "fqdn"},
		Network: {Name: Network, MemberField: "ip_prefix_local"},
	}
)

// Register adds or replaces a type definition. Both the name and the member
// field must be non-empty.
func Register(def Definition) error {
	name := strings.ToLower(strings.TrimSpace(def.Name))
	field := strings.TrimSpace(def.MemberField)

	if name == "" {
		return errors.NewValidation("object type name must not be empty")
	}
	if field == "" {
		return errors.NewValidation(fmt.Sprintf("object type %q has no member field", name))
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = Definition{Name: name, MemberField: field}

	return nil
}

// Lookup returns the definition for a type name, if one is registered.
// Matching is case-insensitive.
func Lookup(name string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return def, ok
}

// Names returns every registered type name in sorted order
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
