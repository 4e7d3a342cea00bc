package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qusim"
	"qusim/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = config.Server.Addr
		}
		router := api.NewRouter(qusim.NewBackendSelector())
		zap.L().Info("listening", zap.String("addr", addr))
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}
