package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pkg.jsn.cam/lorem/internal/server"
	"pkg.jsn.cam/lorem/pkg/lorem"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator and vocabulary store over HTTP",
		Long: `Starts an HTTP server exposing:
  GET|POST /api/words, /api/sentences, /api/paragraphs
  GET /api/vocabularies, GET|PUT|DELETE /api/vocabularies/{name}
  GET /health, GET /api/version

Generation defaults are reloaded when the config file changes
(server.watch in the config).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			cfg := server.FromConfig(a.cfg, a.configPath)
			a.logger.Info("starting server",
				zap.String("addr", cfg.Addr),
				zap.String("store", a.cfg.StorePath()),
				zap.Bool("watch", cfg.ConfigPath != ""))

			return server.New(cfg, st, lorem.Global(), a.logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
