package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// Config 配置文件结构
type Config struct {
	Backtest BacktestSection `yaml:"backtest"`
	Rules    RulesSection    `yaml:"rules"`
	Data     DataSection     `yaml:"data"`
	Output   OutputSection   `yaml:"output"`
	Server   ServerSection   `yaml:"server"`
}

// BacktestSection 回测配置
type BacktestSection struct {
	StockValue      float64 `yaml:"stock_value"`
	BondValue       float64 `yaml:"bond_value"`
	MonthlyAddition float64 `yaml:"monthly_addition"`
	AvailableMargin float64 `yaml:"available_margin"`
	MarginRate      float64 `yaml:"margin_rate"`
}

// RulesSection 阈值梯规则配置, 百分比取值 (0,100)
type RulesSection struct {
	DecreasePercents []float64 `yaml:"decrease_percents"`
	SellPercents     []float64 `yaml:"sell_percents"`

	DecreaseBuyPercents  []float64 `yaml:"decrease_buy_percents"`
	IncreasePercents     []float64 `yaml:"increase_percents"`
	IncreaseSellPercents []float64 `yaml:"increase_sell_percents"`
}

// DataSection 数据源配置
type DataSection struct {
	Source      string `yaml:"source"` // csv 或 alphavantage
	DataDir     string `yaml:"data_dir"`
	APIKey      string `yaml:"api_key"`
	StockSymbol string `yaml:"stock_symbol"`
	BondSymbol  string `yaml:"bond_symbol"`
	Symbol      string `yaml:"symbol"` // 融资模拟使用的单一标的
	Length      int    `yaml:"length"`
}

// OutputSection 输出配置
type OutputSection struct {
	Path string `yaml:"path"`
}

// ServerSection HTTP服务配置
type ServerSection struct {
	Listen string `yaml:"listen"`
}

// LoadConfig 从文件加载配置
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// ToRebalanceParams 组装再平衡模拟参数
func (c *Config) ToRebalanceParams(stockCloses, bondCloses []float64) types.RebalanceParams {
	return types.RebalanceParams{
		StockCloses:      stockCloses,
		BondCloses:       bondCloses,
		StockValue:       c.Backtest.StockValue,
		BondValue:        c.Backtest.BondValue,
		DecreasePercents: c.Rules.DecreasePercents,
		SellPercents:     c.Rules.SellPercents,
		MonthlyAddition:  c.Backtest.MonthlyAddition,
	}
}

// ToMarginParams 组装融资买入模拟参数
func (c *Config) ToMarginParams(closes []float64) types.MarginParams {
	return types.MarginParams{
		Closes:               closes,
		MarginRate:           c.Backtest.MarginRate,
		AvailableMargin:      c.Backtest.AvailableMargin,
		DecreasePercents:     c.Rules.DecreasePercents,
		DecreaseBuyPercents:  c.Rules.DecreaseBuyPercents,
		IncreasePercents:     c.Rules.IncreasePercents,
		IncreaseSellPercents: c.Rules.IncreaseSellPercents,
	}
}

// GetDataDir 获取数据目录
func (c *Config) GetDataDir() string {
	if c.Data.DataDir != "" {
		return c.Data.DataDir
	}
	return "data/sample"
}

// GetLength 获取序列长度
func (c *Config) GetLength() int {
	if c.Data.Length > 0 {
		return c.Data.Length
	}
	return 250
}

// GetOutputPath 获取输出路径
func (c *Config) GetOutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return "output/result.json"
}

// GetListen 获取HTTP监听地址
func (c *Config) GetListen() string {
	if c.Server.Listen != "" {
		return c.Server.Listen
	}
	return ":8080"
}
