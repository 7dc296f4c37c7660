// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package login

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ztbtools/objectsync/internal/config"
	"github.com/ztbtools/objectsync/internal/infrastructure/airgap"
	"github.com/ztbtools/objectsync/internal/infrastructure/dotenv"
	"github.com/ztbtools/objectsync/pkg/constants"
	"github.com/ztbtools/objectsync/pkg/errors"
	"github.com/ztbtools/objectsync/pkg/log"
)

var (
	flagEnvFile string
	flagBaseURL string
	flagVerbose bool
)

// Cmd represents the `objectsync login` command. It performs the identity
// exchange on its own so the bearer credential is in place before a sync.
var Cmd = &cobra.Command{
	Use:           "login",
	Short:         "Exchange the configured API key for a bearer credential and persist it",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagEnvFile)
		if err != nil {
			return err
		}
		cfg.Verbose = flagVerbose
		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL = flagBaseURL
		}

		log.Init(cfg.Verbose)

		if cfg.BaseURL == "" {
			return errors.NewValidation("ZTB_API_BASE or BASE_URL is required, expected https://<tenant>-api.goairgap.com")
		}
		if cfg.APIKey == "" {
			return errors.NewValidation("API_KEY is required to obtain a bearer credential")
		}

		clientConfig, err := airgap.NewConfig(cfg.BaseURL, cfg.HTTPTimeout, cfg.MaxRetries, cfg.RetryDelay)
		if err != nil {
			return err
		}
		client := airgap.NewClient(clientConfig)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		credential, err := client.ExchangeAPIKey(ctx, cfg.APIKey)
		if err != nil {
			return err
		}

		if err := dotenv.NewStore(cfg.EnvFile).SaveBearer(ctx, credential); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Bearer credential saved to %s\n", cfg.EnvFile)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&flagEnvFile, "env-file", constants.DefaultEnvFile, "Path to the env file holding credentials")
	Cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Controller base URL (overrides ZTB_API_BASE)")
	Cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
}
