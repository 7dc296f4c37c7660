// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package dotenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/pkg/errors"
)

const bearerKey = "BEARER"

// Store persists the bearer credential in a dotenv file, usually the same
// file configuration is loaded from, so later runs can skip the identity
// exchange
type Store struct {
	path string
}

// NewStore creates a Store backed by the given dotenv file
func NewStore(path string) *Store {
	return &Store{path: path}
}

// SaveBearer writes the credential under the BEARER key, preserving every
// other entry in the file. A missing file is created.
func (s *Store) SaveBearer(ctx context.Context, credential model.Credential) error {
	env, err := godotenv.Read(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.NewUnexpected(fmt.Sprintf("reading %s", s.path), err)
		}
		env = map[string]string{}
	}

	env[bearerKey] = credential.Token

	if err := godotenv.Write(env, s.path); err != nil {
		return errors.NewUnexpected(fmt.Sprintf("writing %s", s.path), err)
	}

	slog.DebugContext(ctx, "bearer credential persisted",
		"path", s.path,
	)

	return nil
}
