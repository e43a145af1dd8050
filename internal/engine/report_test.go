package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

func TestExportRebalanceResult(t *testing.T) {
	params := types.RebalanceParams{
		StockCloses:      []float64{100, 90, 100},
		BondCloses:       []float64{50, 50, 50},
		StockValue:       1000,
		BondValue:        1000,
		DecreasePercents: []float64{5},
		SellPercents:     []float64{10},
	}
	result, err := SimulateRebalance(params)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, ExportRebalanceResult(path, params, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope struct {
		Mode   string                `json:"mode"`
		Result types.RebalanceResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, "rebalance", envelope.Mode)
	assert.Equal(t, result.Fires, envelope.Result.Fires)
	assert.InDelta(t, result.Return, envelope.Result.Return, 1e-12)
}

func TestExportMarginResultNil(t *testing.T) {
	err := ExportMarginResult(filepath.Join(t.TempDir(), "r.json"), types.MarginParams{}, nil)
	assert.Error(t, err)
}
