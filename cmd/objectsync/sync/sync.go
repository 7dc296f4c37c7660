// Copyright The objectsync Authors.
// SPDX-License-Identifier: MIT

package sync

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ztbtools/objectsync/internal/config"
	"github.com/ztbtools/objectsync/internal/domain/model"
	"github.com/ztbtools/objectsync/internal/domain/objecttype"
	"github.com/ztbtools/objectsync/internal/domain/port"
	"github.com/ztbtools/objectsync/internal/infrastructure/airgap"
	"github.com/ztbtools/objectsync/internal/infrastructure/csvfile"
	"github.com/ztbtools/objectsync/internal/infrastructure/dotenv"
	"github.com/ztbtools/objectsync/internal/infrastructure/mock"
	"github.com/ztbtools/objectsync/internal/infrastructure/render"
	"github.com/ztbtools/objectsync/internal/service"
	"github.com/ztbtools/objectsync/pkg/constants"
	"github.com/ztbtools/objectsync/pkg/log"
)

var (
	flagCSV      string
	flagTemplate string
	flagTypes    string
	flagEnvFile  string
	flagBaseURL  string
	flagTarget   string
	flagDryRun   bool
	flagVerbose  bool
)

// Cmd represents the `objectsync sync` command.
var Cmd = &cobra.Command{
	Use:           "sync",
	Short:         "Read object definitions from CSV and create them on the controller",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		log.Init(cfg.Verbose)
		slog.Debug("configuration resolved", "config", cfg.String())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary, runErr := runPipeline(ctx, cfg)

		// A run that aborted before producing outcomes has no summary.
		if runErr == nil || len(summary.Outcomes) > 0 {
			printPreviews(os.Stdout, summary, cfg.DryRun || cfg.Verbose)
			printSummary(os.Stdout, summary)
		}

		return evaluateExit(summary, runErr)
	},
}

func init() {
	Cmd.Flags().StringVar(&flagCSV, "csv", constants.DefaultCSVPath, "Path to the CSV input")
	Cmd.Flags().StringVar(&flagTemplate, "template", "", "Path to a custom payload template")
	Cmd.Flags().StringVar(&flagTypes, "types", "", "Path to a YAML file with additional object types")
	Cmd.Flags().StringVar(&flagEnvFile, "env-file", constants.DefaultEnvFile, "Path to the env file holding credentials")
	Cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Controller base URL (overrides ZTB_API_BASE)")
	Cmd.Flags().StringVar(&flagTarget, "target", config.TargetZTB, "Delivery target: ztb or mock")
	Cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Render and print payloads without delivering them")
	Cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
}

// buildConfig resolves env file, environment and flags into one validated
// configuration. Flags win over the environment.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, err
	}

	cfg.CSVPath = flagCSV
	cfg.TemplatePath = flagTemplate
	cfg.TypesPath = flagTypes
	cfg.Target = flagTarget
	cfg.DryRun = flagDryRun
	cfg.Verbose = flagVerbose
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runPipeline assembles the adapters behind their ports and runs one sync.
func runPipeline(ctx context.Context, cfg *config.Config) (model.RunSummary, error) {
	if cfg.TypesPath != "" {
		if err := objecttype.LoadFile(cfg.TypesPath); err != nil {
			return model.RunSummary{}, err
		}
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		return model.RunSummary{}, err
	}

	creator, exchanger, err := newTarget(cfg)
	if err != nil {
		return model.RunSummary{}, err
	}

	credentials := service.NewCredentialManager(exchanger, dotenv.NewStore(cfg.EnvFile), cfg.APIKey, cfg.Bearer)
	dispatcher := service.NewDispatcher(creator, credentials, cfg.DryRun)
	source := csvfile.NewLoader(cfg.CSVPath)

	return service.NewObjectSync(source, renderer, dispatcher, credentials).Sync(ctx)
}

func newRenderer(cfg *config.Config) (port.PayloadRenderer, error) {
	if cfg.TemplatePath == "" {
		return render.NewRenderer(), nil
	}
	return render.NewRendererFromFile(cfg.TemplatePath)
}

// newTarget picks the delivery backend. The mock target runs the whole
// pipeline against an in-process stub that answers every delivery with 201.
func newTarget(cfg *config.Config) (port.ObjectCreator, port.TokenExchanger, error) {
	if cfg.Target == config.TargetMock {
		return mock.NewMockObjectCreator(), mock.NewMockTokenExchanger(), nil
	}

	clientConfig, err := airgap.NewConfig(cfg.BaseURL, cfg.HTTPTimeout, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		return nil, nil, err
	}

	client := airgap.NewClient(clientConfig)
	return client, client, nil
}
