// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package objecttype

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ztbtools/objectsync/pkg/errors"
)

// typesFile is the on-disk shape of an object type definition file
type typesFile struct {
	Types []Definition `yaml:"types"`
}

// LoadFile merges type definitions from a YAML file into the registry.
// A definition for an existing name replaces it.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewValidation("reading object type definitions", err)
	}

	var file typesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.NewValidation("parsing object type definitions", err)
	}

	if len(file.Types) == 0 {
		return errors.NewValidation(fmt.Sprintf("no object types defined in %s", path))
	}

	for _, def := range file.Types {
		if err := Register(def); err != nil {
			return err
		}
	}

	return nil
}
