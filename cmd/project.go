package cmd

import (
	"fmt"
	"strings"

	"model-generator/core/config"
	"model-generator/core/database"
	"model-generator/core/logger"
	"model-generator/core/storage"
	"model-generator/feature/generation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig reads the configuration and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	g := &cfg.Generator
	flags := cmd.Flags()
	if flags.Changed("target") {
		g.TargetDir = targetDirFlag
	}
	if flags.Changed("model") {
		g.ModelFile = modelFileFlag
		g.ModelSource = "file"
	}
	if flags.Changed("descriptor") {
		g.Descriptor = descriptorFlag
	}
	if flags.Changed("root") {
		g.TemplateRoots = rootsFlag
	}
	if flags.Changed("actor") {
		g.Actors = actorsFlag
	}
	if flags.Changed("workers") {
		g.Workers = workersFlag
	}
	return cfg, nil
}

// newService connects the optional storage and database collaborators and
// builds the generation service.
func newService(cfg *config.Config, l *zap.Logger) (*generation.Service, error) {
	deps := generation.Deps{
		Bucket: cfg.Storage.Bucket,
		Tables: cfg.Database.Tables,
		Logger: l,
	}

	for _, root := range cfg.Generator.TemplateRoots {
		if !strings.HasPrefix(root, "s3://") {
			continue
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		deps.Storage = client
		break
	}

	if cfg.Generator.ModelSource == "database" {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		l.Info("Connected to model database", zap.String("driver", cfg.Database.Driver))
		deps.DB = db
	}

	return generation.NewService(cfg.Generator, deps), nil
}

// serviceFor initializes the logger and the service for a loaded configuration.
func serviceFor(cfg *config.Config) (*zap.Logger, *generation.Service, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	svc, err := newService(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return l, svc, nil
}
