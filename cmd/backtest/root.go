package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opsxjacky/Drawdown-backtest/internal/config"
	"github.com/opsxjacky/Drawdown-backtest/internal/data"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "下跌买入规则回测工具",
	Long:  "基于历史价格序列回测下跌买入类再平衡与融资策略",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	rootCmd.AddCommand(rebalanceCmd)
	rootCmd.AddCommand(marginCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig 加载配置文件
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newProvider 按配置创建数据源
func newProvider(cfg *config.Config) (data.SeriesProvider, error) {
	switch cfg.Data.Source {
	case "", "csv":
		return data.NewCSVLoader(cfg.GetDataDir()), nil
	case "alphavantage":
		if cfg.Data.APIKey == "" {
			return nil, fmt.Errorf("alphavantage source requires data.api_key")
		}
		return data.NewAlphaVantageClient(cfg.Data.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Data.Source)
	}
}
