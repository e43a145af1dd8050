package types

import (
	"fmt"
	"time"
)

// PricePoint 单个价格观测
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Close     float64   `json:"close"`
}

// PriceSeries 日收盘价序列, 最新在前 (与数据源返回顺序一致)
// 模拟引擎内部按时间正序遍历, 即从切片末尾向切片头部扫描
type PriceSeries []PricePoint

// Closes 提取收盘价 (保持最新在前的顺序)
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Validate 校验序列: 非空、价格为正、时间戳严格递减
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("series is empty: %w", ErrInvalidParameter)
	}
	for i, p := range s {
		if p.Close <= 0 {
			return fmt.Errorf("non-positive price %.4f at index %d: %w", p.Close, i, ErrInvalidParameter)
		}
		if i > 0 && !p.Timestamp.Before(s[i-1].Timestamp) {
			return fmt.Errorf("timestamps not strictly decreasing at index %d: %w", i, ErrInvalidParameter)
		}
	}
	return nil
}

// Valuation 股债两类资产的当前估值, 模拟过程中逐步原地更新
type Valuation struct {
	Stock float64 `json:"stock"`
	Bond  float64 `json:"bond"`
}

// Total 组合总估值
func (v Valuation) Total() float64 {
	return v.Stock + v.Bond
}

// ApplyRatios 按当期价格比更新两类资产估值
func (v *Valuation) ApplyRatios(stockRatio, bondRatio float64) {
	v.Stock *= stockRatio
	v.Bond *= bondRatio
}

// TransferBondToStock 卖出债券并等额买入股票
func (v *Valuation) TransferBondToStock(amount float64) {
	v.Bond -= amount
	v.Stock += amount
}

// RebalanceParams 再平衡模拟参数 (收盘价序列均为最新在前)
type RebalanceParams struct {
	StockCloses []float64 `json:"stock_closes"`
	BondCloses  []float64 `json:"bond_closes"`
	StockValue  float64   `json:"stock_value"`
	BondValue   float64   `json:"bond_value"`

	// DecreasePercents 触发买入的回撤百分比列表, (0,100) 严格递增
	DecreasePercents []float64 `json:"decrease_percents"`
	// SellPercents 对应梯级卖出的债券比例百分比, 与 DecreasePercents 等长
	SellPercents []float64 `json:"sell_percents"`

	// MonthlyAddition 每 25 个交易日注入债券的外部资金
	MonthlyAddition float64 `json:"monthly_addition"`
}

// RebalanceResult 再平衡模拟结果
type RebalanceResult struct {
	InitialValue float64   `json:"initial_value"`
	Final        Valuation `json:"final"`
	// Return 组合收益率, 0.0421 表示 +4.21%
	Return float64 `json:"return"`
	// Fires 阈值梯实际触发的梯级数
	Fires int `json:"fires"`
	Steps int `json:"steps"`
}

// MarginParams 融资买入模拟参数
type MarginParams struct {
	Closes []float64 `json:"closes"`

	// MarginRate 融资利率百分比, 仅记录, 利息计提口径未定义
	MarginRate      float64 `json:"margin_rate"`
	AvailableMargin float64 `json:"available_margin"`

	DecreasePercents    []float64 `json:"decrease_percents"`
	DecreaseBuyPercents []float64 `json:"decrease_buy_percents"`

	IncreasePercents     []float64 `json:"increase_percents"`
	IncreaseSellPercents []float64 `json:"increase_sell_percents"`
}

// MarginResult 融资买入模拟的终态
type MarginResult struct {
	MarginStockValue float64 `json:"margin_stock_value"`
	AvailableMargin  float64 `json:"available_margin"`
	Draws            int     `json:"draws"`
	Sales            int     `json:"sales"`
	Steps            int     `json:"steps"`
}
