package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csv2json/internal/logger"
	"github.com/shapestone/shape-csv2json/internal/mcptool"
	"github.com/shapestone/shape-csv2json/internal/server"
)

func (a *app) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: "Serve exposes POST /v1/convert and GET /healthz until interrupted, then " +
			"drains in-flight requests before exiting.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server, cfg.Output)
			logger.Get().Info().
				Str("version", a.version).
				Str("addr", srv.Addr()).
				Int64("max_body_bytes", cfg.Server.MaxBodyBytes).
				Strs("allowed_origins", cfg.Server.AllowedOrigins).
				Msg("starting http service")
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the convert_csv tool over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Get().Info().Str("version", a.version).Msg("starting mcp server on stdio")
			return mcptool.NewServer(a.version).Run(ctx, &mcp.StdioTransport{})
		},
	}
}
