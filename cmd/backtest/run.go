package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opsxjacky/Drawdown-backtest/internal/engine"
)

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "回测股债再平衡规则",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		length := cfg.GetLength()

		stockSeries, err := provider.FetchSeries(ctx, cfg.Data.StockSymbol, length)
		if err != nil {
			return fmt.Errorf("failed to fetch stock series: %w", err)
		}
		bondSeries, err := provider.FetchSeries(ctx, cfg.Data.BondSymbol, length)
		if err != nil {
			return fmt.Errorf("failed to fetch bond series: %w", err)
		}

		params := cfg.ToRebalanceParams(stockSeries.Closes(), bondSeries.Closes())
		result, err := engine.SimulateRebalance(params)
		if err != nil {
			return err
		}

		engine.PrintRebalanceSummary(result)
		if err := engine.ExportRebalanceResult(cfg.GetOutputPath(), params, result); err != nil {
			return err
		}
		log.Info().Str("path", cfg.GetOutputPath()).Msg("result exported")
		return nil
	},
}

var marginCmd = &cobra.Command{
	Use:   "margin",
	Short: "回测下跌融资买入规则",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}

		series, err := provider.FetchSeries(context.Background(), cfg.Data.Symbol, cfg.GetLength())
		if err != nil {
			return fmt.Errorf("failed to fetch series: %w", err)
		}

		params := cfg.ToMarginParams(series.Closes())
		result, err := engine.SimulateMargin(params)
		if err != nil {
			return err
		}

		engine.PrintMarginSummary(result)
		if err := engine.ExportMarginResult(cfg.GetOutputPath(), params, result); err != nil {
			return err
		}
		log.Info().Str("path", cfg.GetOutputPath()).Msg("result exported")
		return nil
	},
}
