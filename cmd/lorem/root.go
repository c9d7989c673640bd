package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pkg.jsn.cam/lorem/internal/config"
	"pkg.jsn.cam/lorem/internal/store"
	"pkg.jsn.cam/lorem/pkg/client"
	"pkg.jsn.cam/lorem/pkg/lorem"
)

// app carries state shared by every subcommand.
type app struct {
	// Global flags
	verbose    bool
	configPath string
	dbPath     string
	remote     string

	cfg    *config.Config
	logger *zap.Logger

	// newLogger is swapped out by tests.
	newLogger func(level zapcore.Level) (*zap.Logger, error)
}

func productionLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func newRootCmd() *cobra.Command {
	return (&app{newLogger: productionLogger}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lorem",
		Short: "Generate lorem ipsum placeholder text",
		Long: `lorem generates random Latin-looking placeholder words, sentences and
paragraphs from a fixed or custom vocabulary.

It can run locally, serve the same operations over HTTP, or talk to a
running server with --remote.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&a.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	flags.StringVar(&a.dbPath, "db", "", "vocabulary database path (overrides store.path; \":memory:\" for none)")
	flags.StringVar(&a.remote, "remote", "", "base URL of a lorem server to use instead of generating locally")

	root.AddCommand(
		a.generateCmd(kindWord),
		a.generateCmd(kindSentence),
		a.generateCmd(kindParagraph),
		a.serveCmd(),
		a.vocabCmd(),
		a.versionCmd(),
	)
	return root
}

// init loads the config, builds the logger and installs the configured
// generation defaults process-wide.
func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Store.Path = a.dbPath
		if a.dbPath == ":memory:" {
			cfg.Store.Backend = "memory"
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	level := cfg.LogLevel()
	if a.verbose {
		level = zapcore.DebugLevel
	}
	if a.logger, err = a.newLogger(level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := lorem.Global().Apply(cfg.Values()); err != nil {
		return fmt.Errorf("invalid generation settings: %w", err)
	}
	a.logger.Debug("config loaded",
		zap.String("path", a.configPath),
		zap.String("store", cfg.StorePath()))
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.cfg.StorePath(), a.logger)
}

func (a *app) client() *client.Client {
	return client.NewClient(a.remote)
}
