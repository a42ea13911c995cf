package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alixdehghani/HyperMetrics/config"
	"github.com/alixdehghani/HyperMetrics/internal/logging"
	"github.com/alixdehghani/HyperMetrics/store"
	"github.com/alixdehghani/HyperMetrics/telemetry"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "hyperedit",
	Short:         "Network-element configuration and measurement editor",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "hyperedit.yaml", "Path to configuration file")
	rootCmd.AddCommand(generateCmd, exportCmd, checkCmd, queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file. A missing file is only an error
// when the path was set explicitly; otherwise the defaults apply.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if os.IsNotExist(err) && !cmd.Flags().Changed("config") {
			return &config.Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	return logging.Setup(cfg.Logging)
}

func newCollector(cfg *config.Config, logger zerolog.Logger) telemetry.Collector {
	if !cfg.Telemetry.Enabled {
		return telemetry.Noop()
	}
	collector, err := telemetry.NewPrometheusCollector(nil)
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry disabled")
		return telemetry.Noop()
	}
	return collector
}

// openStore opens the configured snapshot store, an in-memory one when no
// path is set.
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StorePath == "" {
		return store.NewMemory(), nil
	}
	return store.OpenSQLite(cfg.StorePath)
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func readJSONBytes(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
