package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

const defaultAlphaVantageEndpoint = "https://www.alphavantage.co/query"

// AlphaVantageClient Alpha Vantage 日线数据客户端
//
// 免费档限流 5 次/分钟, 请求前通过限流器等待;
// 连续失败时熔断器打开, 避免反复打到已不可用的接口
type AlphaVantageClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewAlphaVantageClient 创建 Alpha Vantage 客户端
func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	settings := gobreaker.Settings{
		Name:    "alphavantage",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("provider", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &AlphaVantageClient{
		endpoint:   defaultAlphaVantageEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		// 免费档 5 req/min
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 1),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// SourceType 返回数据源类型
func (c *AlphaVantageClient) SourceType() string {
	return "alphavantage"
}

// dailyResponse TIME_SERIES_DAILY_ADJUSTED 响应结构
type dailyResponse struct {
	TimeSeries map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series (Daily)"`
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
}

// FetchSeries 获取标的最近 length 个日收盘价, 最新在前
func (c *AlphaVantageClient) FetchSeries(ctx context.Context, symbol string, length int) (types.PriceSeries, error) {
	if length < 1 {
		return nil, fmt.Errorf("length must be at least 1, got %d: %w", length, types.ErrInvalidParameter)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		return c.query(ctx, symbol)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	resp := raw.(*dailyResponse)

	series := make(types.PriceSeries, 0, len(resp.TimeSeries))
	for dateStr, bar := range resp.TimeSeries {
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue // 跳过解析错误的行
		}
		close, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}
		series = append(series, types.PricePoint{Timestamp: t, Close: close})
	}

	// 最新在前
	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.After(series[j].Timestamp)
	})

	if length > len(series) {
		return nil, fmt.Errorf("requested %d points, only %d available for %s: %w",
			length, len(series), symbol, types.ErrInsufficientHistory)
	}
	return series[:length], nil
}

// query 发起请求并解析响应
func (c *AlphaVantageClient) query(ctx context.Context, symbol string) (*dailyResponse, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY_ADJUSTED")
	params.Set("symbol", symbol)
	params.Set("outputsize", "full")
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var daily dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&daily); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if daily.ErrorMessage != "" {
		return nil, fmt.Errorf("api error: %s", daily.ErrorMessage)
	}
	if daily.Note != "" {
		// 免费档限频提示
		return nil, fmt.Errorf("api throttled: %s", daily.Note)
	}
	if len(daily.TimeSeries) == 0 {
		return nil, fmt.Errorf("empty time series for %s", symbol)
	}
	return &daily, nil
}

// SetEndpoint 覆盖默认接口地址 (测试用)
func (c *AlphaVantageClient) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}
