package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/internal/cli"
	"github.com/aretw0/statusmap/internal/config"
	"github.com/aretw0/statusmap/internal/presentation/tui"
)

// errRejected signals a failed check whose report was already printed.
var errRejected = errors.New("rejected")

var rootCmd = &cobra.Command{
	Use:   "statusmap",
	Short: "Statusmap validates status transitions against a declared workflow",
	Long: `Statusmap reads a status workflow (YAML, JSON, HCL or a Loam directory)
and tells whether a transition between two statuses is valid, or whether it
goes back to the past, jumps to the future or links unrelated statuses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "statusmap.yaml", "Definition file (.yaml, .yml, .json, .hcl) or Loam directory")
	rootCmd.PersistentFlags().String("config", "", "Path to the service configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads --config when given and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	return cli.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
}

func mapOptions(cfg config.Config, logger *slog.Logger) []statusmap.Option {
	opts := []statusmap.Option{statusmap.WithLogger(logger)}
	if cfg.Cache.Disabled {
		return append(opts, statusmap.WithoutCache())
	}
	return append(opts, statusmap.WithCacheSize(cfg.Cache.Size))
}

// loadMap compiles the map named by --file.
func loadMap(cmd *cobra.Command) (*statusmap.Map, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("file")
	return cli.LoadMap(cmd.Context(), path, mapOptions(cfg, logger)...)
}

func printReport(cmd *cobra.Command, markdown string) error {
	return tui.NewRenderer(cmd.OutOrStdout()).Print(markdown)
}
