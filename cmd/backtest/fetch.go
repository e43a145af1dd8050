package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchLength int

var fetchCmd = &cobra.Command{
	Use:   "fetch <symbol>",
	Short: "拉取并打印标的收盘价序列",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}

		length := fetchLength
		if length <= 0 {
			length = cfg.GetLength()
		}

		series, err := provider.FetchSeries(context.Background(), args[0], length)
		if err != nil {
			return err
		}

		for _, p := range series {
			fmt.Printf("%s\t%.4f\n", p.Timestamp.Format("2006-01-02"), p.Close)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVarP(&fetchLength, "length", "n", 0, "序列长度 (默认取配置值)")
}
