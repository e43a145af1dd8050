package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/opsxjacky/Drawdown-backtest/internal/strategy"
	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// SimulateRebalance 回测"下跌买入"再平衡规则
//
// 序列按时间正序遍历 (从切片末尾向头部), 每步先按价格比更新股债估值,
// 每 25 步向债券注入一次外部资金; 股价刷新运行最小值时计算回撤并
// 交给阈值梯, 每触发一个梯级就按动作比例卖出债券买入股票
// 返回组合收益率: (终值)/(初值) - 1
func SimulateRebalance(p types.RebalanceParams) (*types.RebalanceResult, error) {
	if err := validateCloses("stock", p.StockCloses); err != nil {
		return nil, err
	}
	if err := validateCloses("bond", p.BondCloses); err != nil {
		return nil, err
	}
	if len(p.StockCloses) != len(p.BondCloses) {
		return nil, fmt.Errorf("stock series has %d points, bond series has %d: %w",
			len(p.StockCloses), len(p.BondCloses), types.ErrInvalidParameter)
	}

	ladder, err := strategy.NewLadder(p.DecreasePercents, p.SellPercents)
	if err != nil {
		return nil, fmt.Errorf("invalid rebalance rule: %w", err)
	}

	val := types.Valuation{Stock: p.StockValue, Bond: p.BondValue}
	initial := val.Total()
	if initial <= 0 {
		return nil, fmt.Errorf("initial portfolio value must be positive, got %.4f: %w",
			initial, types.ErrInvalidParameter)
	}

	n := len(p.StockCloses)
	log.Info().Int("points", n).Int("rungs", ladder.Remaining()).
		Float64("initial_value", initial).Msg("rebalance simulation started")

	// 序列最新在前, 末位是最旧价格
	tracker := strategy.NewExtremaTracker(p.StockCloses[n-1])
	fires := 0

	for i := n - 2; i >= 0; i-- {
		val.ApplyRatios(p.StockCloses[i]/p.StockCloses[i+1], p.BondCloses[i]/p.BondCloses[i+1])

		// 每 25 个交易日的定投注入
		if i%25 == 0 {
			val.Bond += p.MonthlyAddition
		}

		if tracker.Observe(p.StockCloses[i]) != strategy.EventNewMinimum {
			continue
		}
		for _, frac := range ladder.MaybeFire(tracker.Drawdown()) {
			amount := val.Bond * frac
			val.TransferBondToStock(amount)
			fires++
			log.Debug().Float64("drawdown", tracker.Drawdown()).
				Float64("amount", amount).Int("remaining", ladder.Remaining()).
				Msg("drawdown rung fired")
		}
	}

	result := &types.RebalanceResult{
		InitialValue: initial,
		Final:        val,
		Return:       val.Total()/initial - 1,
		Fires:        fires,
		Steps:        n - 1,
	}
	log.Info().Float64("final_value", val.Total()).Float64("return", result.Return).
		Int("fires", fires).Msg("rebalance simulation finished")
	return result, nil
}

// validateCloses 校验收盘价序列非空且全部为正
func validateCloses(name string, closes []float64) error {
	if len(closes) == 0 {
		return fmt.Errorf("%s series is empty: %w", name, types.ErrInvalidParameter)
	}
	for i, c := range closes {
		if c <= 0 {
			return fmt.Errorf("%s series has non-positive price %.4f at index %d: %w",
				name, c, i, types.ErrInvalidParameter)
		}
	}
	return nil
}
