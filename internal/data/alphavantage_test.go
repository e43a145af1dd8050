package data

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsxjacky/Drawdown-backtest/pkg/types"
)

const sampleDailyJSON = `{
  "Meta Data": {"2. Symbol": "SPY"},
  "Time Series (Daily)": {
    "2024-01-04": {"4. close": "99.5000"},
    "2024-01-05": {"4. close": "102.0000"},
    "2024-01-03": {"4. close": "101.5000"}
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *AlphaVantageClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewAlphaVantageClient("demo")
	client.SetEndpoint(server.URL)
	return client
}

func TestAlphaVantageFetchSeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY_ADJUSTED", r.URL.Query().Get("function"))
		assert.Equal(t, "SPY", r.URL.Query().Get("symbol"))
		assert.Equal(t, "demo", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, sampleDailyJSON)
	})

	series, err := client.FetchSeries(context.Background(), "SPY", 2)
	require.NoError(t, err)
	require.Len(t, series, 2)

	// 最新在前
	assert.Equal(t, "2024-01-05", series[0].Timestamp.Format("2006-01-02"))
	assert.Equal(t, 102.0, series[0].Close)
	assert.Equal(t, 99.5, series[1].Close)
	require.NoError(t, series.Validate())
}

func TestAlphaVantageInsufficientHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleDailyJSON)
	})

	_, err := client.FetchSeries(context.Background(), "SPY", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInsufficientHistory))
}

func TestAlphaVantageAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Error Message": "Invalid API call"}`)
	})

	_, err := client.FetchSeries(context.Background(), "BAD", 1)
	assert.ErrorContains(t, err, "Invalid API call")
}

func TestAlphaVantageThrottleNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage!"}`)
	})

	_, err := client.FetchSeries(context.Background(), "SPY", 1)
	assert.ErrorContains(t, err, "throttled")
}

func TestAlphaVantageHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchSeries(context.Background(), "SPY", 1)
	assert.ErrorContains(t, err, "unexpected status")
}

func TestAlphaVantageInvalidLength(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleDailyJSON)
	})

	_, err := client.FetchSeries(context.Background(), "SPY", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidParameter))
}

func TestAlphaVantageSourceType(t *testing.T) {
	assert.Equal(t, "alphavantage", NewAlphaVantageClient("demo").SourceType())
}
