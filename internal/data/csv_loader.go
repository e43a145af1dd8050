package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

// CSVLoader 从本地CSV文件加载收盘价序列
//
// 每个标的对应 <dataDir>/<symbol>.csv, 需包含日期列与收盘价列
type CSVLoader struct {
	dataDir string
}

// NewCSVLoader 创建CSV加载器
func NewCSVLoader(dataDir string) *CSVLoader {
	return &CSVLoader{dataDir: dataDir}
}

// SourceType 返回数据源类型
func (l *CSVLoader) SourceType() string {
	return "csv"
}

// FetchSeries 加载标的收盘价序列, 按日期降序 (最新在前) 截取 length 个
func (l *CSVLoader) FetchSeries(_ context.Context, symbol string, length int) (types.PriceSeries, error) {
	if length < 1 {
		return nil, fmt.Errorf("length must be at least 1, got %d: %w", length, types.ErrInvalidParameter)
	}

	filePath := filepath.Join(l.dataDir, symbol+".csv")
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file %s has no data rows: %w", filePath, types.ErrInsufficientHistory)
	}

	// 解析表头，找到各列的索引
	colIndex := parseHeader(records[0])
	dateIdx, ok := colIndex["date"]
	if !ok {
		return nil, fmt.Errorf("CSV file %s has no date column", filePath)
	}
	closeIdx, ok := colIndex["adj_close"]
	if !ok {
		// 没有复权价时退回收盘价
		if closeIdx, ok = colIndex["close"]; !ok {
			return nil, fmt.Errorf("CSV file %s has no close column", filePath)
		}
	}

	series := make(types.PriceSeries, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		row := records[i]
		if dateIdx >= len(row) || closeIdx >= len(row) {
			continue
		}
		t, err := parseDate(row[dateIdx])
		if err != nil {
			continue // 跳过解析错误的行
		}
		close, err := strconv.ParseFloat(row[closeIdx], 64)
		if err != nil {
			continue
		}
		series = append(series, types.PricePoint{Timestamp: t, Close: close})
	}

	// 按日期降序, 最新在前
	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.After(series[j].Timestamp)
	})

	if length > len(series) {
		return nil, fmt.Errorf("requested %d points, only %d available for %s: %w",
			length, len(series), symbol, types.ErrInsufficientHistory)
	}
	return series[:length], nil
}

// parseHeader 解析CSV表头
func parseHeader(header []string) map[string]int {
	colIndex := make(map[string]int)
	for i, col := range header {
		switch col {
		case "Date", "date", "DATE", "Timestamp", "timestamp":
			colIndex["date"] = i
		case "Close", "close", "CLOSE":
			colIndex["close"] = i
		case "Adj Close", "adj_close", "AdjClose", "Adj_Close":
			colIndex["adj_close"] = i
		}
	}
	return colIndex
}

// parseDate 解析日期字符串
func parseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
