// Package cmd defines and implements the CLI commands for the uaforge executable.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/config"
	"github.com/uaforge/uaforge/internal/engine"
	"github.com/uaforge/uaforge/internal/logging"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App bundles the services commands need. Keeping it behind an interface
// lets tests inject a mock factory.
type App interface {
	Close()
	Logger() *zap.Logger
	Engine() *engine.Engine
	Config() config.Config
}

type cliApp struct {
	cfg    config.Config
	logger *zap.Logger
	engine *engine.Engine
}

func (a *cliApp) Close() {
	_ = a.engine.Close()
	_ = a.logger.Sync()
}

func (a *cliApp) Logger() *zap.Logger { return a.logger }

func (a *cliApp) Engine() *engine.Engine { return a.engine }

func (a *cliApp) Config() config.Config { return a.cfg }

// newApp is the application factory. It's a variable so tests can replace
// it with a mock factory.
var newApp = func(ctx context.Context) (App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	eng, err := engine.New(ctx, cfg.Engine(), engine.WithLogger(logger))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init engine: %w", err)
	}

	return &cliApp{cfg: cfg, logger: logger, engine: eng}, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uaforge",
		Short: "Synthesize believable HTTP client identities",
		Long: `uaforge resolves a weighted corpus of browser, OS and device
combinations and draws statistically plausible client identities from it.
It can print a single User-Agent, compose the full ordered header set a
real browser would send to a URL, emit fixed crawler signatures, or serve
all of the above over HTTP.`,

		// Runs after flags are parsed but before the subcommand's RunE,
		// so every subcommand finds a ready engine in its context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults plus UAFORGE_* env)")

	cmd.AddCommand(newIdentityCmd())
	cmd.AddCommand(newHeadersCmd())
	cmd.AddCommand(newCrawlerCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() error {
	return newRootCmd().Execute()
}
