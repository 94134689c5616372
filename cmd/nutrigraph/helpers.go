package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nutrigraph/nutrigraph"
	"github.com/nutrigraph/nutrigraph/internal/config"
	"github.com/nutrigraph/nutrigraph/internal/logging"
	"github.com/nutrigraph/nutrigraph/internal/metrics"
	"github.com/nutrigraph/nutrigraph/pkg/adapters/memory"
	redisadapter "github.com/nutrigraph/nutrigraph/pkg/adapters/redis"
	"github.com/nutrigraph/nutrigraph/pkg/foodflow"
	"github.com/nutrigraph/nutrigraph/pkg/ports"
)

// loadConfig reads the configuration file named by --config, or defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger builds the application logger from the --log-level flag.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// newStore selects the run store from the configuration: Redis when an
// address is configured, in-memory otherwise.
func newStore(cfg config.Config) (ports.RunStore, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewStore(), nil
	}
	ttl, err := cfg.Redis.ParseTTL()
	if err != nil {
		return nil, err
	}
	return redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redisadapter.WithTTL(ttl)), nil
}

// buildWorkflows compiles every registered workflow and binds it to the
// store, logger, and (when non-nil) metrics step counters.
func buildWorkflows(cfg config.Config, store ports.RunStore, logger *slog.Logger, m *metrics.Metrics) (map[string]*nutrigraph.Workflow, error) {
	workflows := make(map[string]*nutrigraph.Workflow)
	for _, name := range foodflow.Names() {
		g, err := foodflow.Build(name, foodflow.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to build workflow %s: %w", name, err)
		}
		opts := []nutrigraph.Option{
			nutrigraph.WithStore(store),
			nutrigraph.WithLogger(logger),
			nutrigraph.WithMaxSteps(cfg.Engine.MaxSteps),
		}
		if m != nil {
			opts = append(opts, nutrigraph.WithHooks(m.Hooks(name)))
		}
		workflows[name] = nutrigraph.New(name, g, opts...)
	}
	return workflows, nil
}
