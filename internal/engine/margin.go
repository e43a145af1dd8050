package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/opsxjacky/Drawdown-backtest/internal/strategy"
	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// SimulateMargin 回测"下跌融资买入"规则
//
// 股价刷新运行最小值时以回撤幅度触发下跌梯: 每个梯级按动作比例
// 从可用额度借入资金买入融资持仓, 之后可用额度扣减的是当前累计
// 持仓而非本次借入额; 股价刷新运行最大值且存在
// 回撤记录时以反弹幅度触发上涨梯, 按比例卖出融资持仓, 卖出所得
// 归还可用额度
//
// TODO: 按 MarginRate 对借入资金在借入与卖出之间计提利息,
// 计息口径待定, 当前 MarginRate 仅随参数透传
func SimulateMargin(p types.MarginParams) (*types.MarginResult, error) {
	if err := validateCloses("price", p.Closes); err != nil {
		return nil, err
	}

	decrease, err := strategy.NewLadder(p.DecreasePercents, p.DecreaseBuyPercents)
	if err != nil {
		return nil, fmt.Errorf("invalid decrease rule: %w", err)
	}
	increase, err := strategy.NewLadder(p.IncreasePercents, p.IncreaseSellPercents)
	if err != nil {
		return nil, fmt.Errorf("invalid increase rule: %w", err)
	}

	n := len(p.Closes)
	margin := p.AvailableMargin
	marginStock := 0.0
	draws, sales := 0, 0

	log.Info().Int("points", n).Float64("available_margin", margin).
		Int("decrease_rungs", decrease.Remaining()).Int("increase_rungs", increase.Remaining()).
		Msg("margin simulation started")

	tracker := strategy.NewExtremaTracker(p.Closes[n-1])

	for i := n - 2; i >= 0; i-- {
		switch tracker.Observe(p.Closes[i]) {
		case strategy.EventNewMinimum:
			for _, frac := range decrease.MaybeFire(tracker.Drawdown()) {
				marginStock += frac * margin
				margin -= marginStock
				draws++
				log.Debug().Float64("drawdown", tracker.Drawdown()).
					Float64("margin_stock", marginStock).Float64("margin", margin).
					Msg("margin draw fired")
			}
		case strategy.EventNewMaximum:
			// 从未回撤过的上涨不构成反弹
			if !tracker.Declined() {
				continue
			}
			rebound := tracker.Rebound()
			for _, frac := range increase.MaybeFire(rebound) {
				proceeds := marginStock * frac
				marginStock -= proceeds
				margin += proceeds
				sales++
				log.Debug().Float64("rebound", rebound).
					Float64("margin_stock", marginStock).Float64("margin", margin).
					Msg("margin sale fired")
			}
		}
	}

	result := &types.MarginResult{
		MarginStockValue: marginStock,
		AvailableMargin:  margin,
		Draws:            draws,
		Sales:            sales,
		Steps:            n - 1,
	}
	log.Info().Float64("margin_stock", marginStock).Float64("available_margin", margin).
		Int("draws", draws).Int("sales", sales).Msg("margin simulation finished")
	return result, nil
}
