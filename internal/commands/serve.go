package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ratios/internal/analysis"
	"github.com/cleared-dev/ratios/internal/api"
	"github.com/cleared-dev/ratios/internal/auth"
	"github.com/cleared-dev/ratios/internal/config"
	"github.com/cleared-dev/ratios/internal/report"
	"github.com/cleared-dev/ratios/internal/statement"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ratio analyzer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	users := make([]auth.User, len(cfg.Auth.Users))
	for i, u := range cfg.Auth.Users {
		users[i] = auth.User{Username: u.Username, Password: u.Password}
	}
	if len(users) == 0 {
		logger.Warn().Msg("no users configured, every login will fail")
	}

	srv := api.NewServer(api.Options{
		Analysis:       analysis.NewService(statement.DefaultRegistry(cfg.Statements), cfg.LineItems, logger),
		Auth:           auth.NewService(users, cfg.Server.SessionTTL, cfg.Server.LoginRate, cfg.Server.LoginBurst),
		Exporters:      report.DefaultRegistry(cfg.Export.SheetName),
		ExportFileName: cfg.Export.FileName,
		DefaultFormat:  cfg.Export.Format,
		MaxUploadMB:    cfg.Server.MaxUploadMB,
		Logger:         logger,
	})
	return srv.Listen(ctx, cfg.Server.Addr)
}
