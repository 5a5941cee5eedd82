package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/logger"
	"github.com/hance08/tally/internal/server"
)

func NewServeCmd(state *rootState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		Long: `Serve the ledger as a JSON API. The server holds the store lock while it
runs; stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.App()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = state.cfg.Server.Addr
			}
			if state.cfg.Log.Env == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.Get()
			return server.Run(ctx, addr, server.NewRouter(a.Service, log), log)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from server.addr)")
	return cmd
}
