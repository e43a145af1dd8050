package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// reportEnvelope 导出文件结构: 摘要 + 参数 + 完整结果
type reportEnvelope struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Mode        string      `json:"mode"`
	Params      interface{} `json:"params"`
	Result      interface{} `json:"result"`
}

// ExportRebalanceResult 将再平衡结果导出为JSON文件
func ExportRebalanceResult(path string, p types.RebalanceParams, r *types.RebalanceResult) error {
	if r == nil {
		return fmt.Errorf("no result to export, run simulation first")
	}
	return exportReport(path, "rebalance", p, r)
}

// ExportMarginResult 将融资买入结果导出为JSON文件
func ExportMarginResult(path string, p types.MarginParams, r *types.MarginResult) error {
	if r == nil {
		return fmt.Errorf("no result to export, run simulation first")
	}
	return exportReport(path, "margin", p, r)
}

func exportReport(path, mode string, params, result interface{}) error {
	envelope := reportEnvelope{
		GeneratedAt: time.Now().UTC(),
		Mode:        mode,
		Params:      params,
		Result:      result,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// PrintRebalanceSummary 打印再平衡回测摘要
func PrintRebalanceSummary(r *types.RebalanceResult) {
	if r == nil {
		fmt.Println("No result available")
		return
	}

	fmt.Println("\n========== Rebalance Summary ==========")
	fmt.Printf("Steps: %d\n", r.Steps)
	fmt.Printf("Initial Value: $%.2f\n", r.InitialValue)
	fmt.Printf("Final Stock: $%.2f\n", r.Final.Stock)
	fmt.Printf("Final Bond: $%.2f\n", r.Final.Bond)
	fmt.Printf("Final Value: $%.2f\n", r.Final.Total())
	fmt.Printf("Total Return: %.2f%%\n", r.Return*100)
	fmt.Printf("Rungs Fired: %d\n", r.Fires)
	fmt.Println("========================================")
}

// PrintMarginSummary 打印融资买入回测摘要
func PrintMarginSummary(r *types.MarginResult) {
	if r == nil {
		fmt.Println("No result available")
		return
	}

	fmt.Println("\n=========== Margin Summary ============")
	fmt.Printf("Steps: %d\n", r.Steps)
	fmt.Printf("Margin Stock Value: $%.2f\n", r.MarginStockValue)
	fmt.Printf("Available Margin: $%.2f\n", r.AvailableMargin)
	fmt.Printf("Margin Draws: %d\n", r.Draws)
	fmt.Printf("Margin Sales: %d\n", r.Sales)
	fmt.Println("========================================")
}
