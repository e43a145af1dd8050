package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opsxjacky/Drawdown-backtest/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP模拟服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		router := api.NewRouter()
		log.Info().Str("listen", cfg.GetListen()).Msg("http server started")
		return router.Run(cfg.GetListen())
	},
}
