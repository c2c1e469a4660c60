package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/internal/cli"
	"github.com/aretw0/statusmap/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve [DEFINITION...]",
	Short: "Start the statusmap HTTP server",
	Long: `Serves every map from the configured store over HTTP, seeded with the
definitions listed in the configuration, --file and the arguments.
With --watch, file and directory sources are reloaded when they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Server.Metrics, _ = cmd.Flags().GetBool("metrics")
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Kind, _ = cmd.Flags().GetString("store")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		sources := args
		if cmd.Flags().Changed("file") {
			path, _ := cmd.Flags().GetString("file")
			sources = append([]string{path}, sources...)
		}
		watch, _ := cmd.Flags().GetBool("watch")

		tui.PrintBanner(os.Stderr, statusmap.Version)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		svc, err := cli.NewService(ctx, cli.ServeOptions{
			Config:  cfg,
			Sources: sources,
			Watch:   watch,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		if err := svc.Run(ctx); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Info("server stopped", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().String("store", "memory", "Definition store: memory, redis or sqlite")
	serveCmd.Flags().Bool("watch", false, "Reload definition sources when they change")
}
