package data

import (
	"context"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// SeriesProvider 历史价格序列提供方
type SeriesProvider interface {
	// FetchSeries 返回指定标的最近 length 个日收盘价, 最新在前
	// length 超过可用历史时返回 ErrInsufficientHistory
	FetchSeries(ctx context.Context, symbol string, length int) (types.PriceSeries, error)

	// SourceType 数据源类型
	SourceType() string
}
