// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package root

import (
	"github.com/spf13/cobra"

	"github.com/ztbtools/objectsync/cmd/objectsync/login"
	"github.com/ztbtools/objectsync/cmd/objectsync/sync"
)

// version is overridden at build time via
// -ldflags "-X github.com/ztbtools/objectsync/cmd/objectsync/root.version=v1.2.3".
var version = "dev"

// NewRootCmd creates the root command for objectsync.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objectsync",
		Short:   "Bulk-create objects on a ZTB controller from CSV definitions",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(sync.Cmd)
	cmd.AddCommand(login.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
