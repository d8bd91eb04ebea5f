package binance

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMarket(t *testing.T) (*MarketClient, *stubServer) {
	t.Helper()
	srv := newStubServer(t, http.StatusOK, `{}`)
	return NewMarketClient(newTestClient(t, srv.URL)), srv
}

func TestMarketPublicCalls(t *testing.T) {
	m, srv := newTestMarket(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		call      func() (*Response, error)
		wantPath  string
		wantQuery string
	}{
		{"ping", func() (*Response, error) { return m.Ping(ctx) }, "/api/v3/ping", ""},
		{"time", func() (*Response, error) { return m.ServerTime(ctx) }, "/api/v3/time", ""},
		{"exchange info", func() (*Response, error) { return m.ExchangeInfo(ctx) }, "/api/v3/exchangeInfo", ""},
		{"exchange info symbol", func() (*Response, error) { return m.ExchangeInfoSymbol(ctx, "BTCUSDT") }, "/api/v3/exchangeInfo", "symbol=BTCUSDT"},
		{"depth", func() (*Response, error) { return m.Depth(ctx, "BNBUSDT", 100) }, "/api/v3/depth", "symbol=BNBUSDT&limit=100"},
		{"trades", func() (*Response, error) { return m.Trades(ctx, "BNBUSDT", 0) }, "/api/v3/trades", "symbol=BNBUSDT"},
		{"avg price", func() (*Response, error) { return m.AvgPrice(ctx, "ETHBTC") }, "/api/v3/avgPrice", "symbol=ETHBTC"},
		{"ticker all", func() (*Response, error) { return m.Ticker24hr(ctx, "") }, "/api/v3/ticker/24hr", ""},
		{"ticker price", func() (*Response, error) { return m.TickerPrice(ctx, "BTCUSDT") }, "/api/v3/ticker/price", "symbol=BTCUSDT"},
		{"book ticker", func() (*Response, error) { return m.BookTicker(ctx, "BTCUSDT") }, "/api/v3/ticker/bookTicker", "symbol=BTCUSDT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.NoError(t, err)
			got := srv.last(t)
			assert.Equal(t, http.MethodGet, got.Method)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantQuery, got.RawQuery)
		})
	}
}

func TestExchangeInfoSymbolsSendsEscapedJSON(t *testing.T) {
	m, srv := newTestMarket(t)

	_, err := m.ExchangeInfoSymbols(context.Background(), []string{"BTCUSDT", "BNBBTC"})
	require.NoError(t, err)
	assert.Equal(t, "symbols=%5B%22BTCUSDT%22%2C%22BNBBTC%22%5D", srv.last(t).RawQuery)

	_, err = m.ExchangeInfoSymbols(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDepthRejectsUnsupportedLimit(t *testing.T) {
	m, srv := newTestMarket(t)

	for _, limit := range []int{0, 1, 25, 5001} {
		_, err := m.Depth(context.Background(), "BNBUSDT", limit)
		require.ErrorIs(t, err, ErrInvalidArgument, "limit %d", limit)
	}
	_, err := m.Depth(context.Background(), "", 5)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, srv.count())
}

func TestTradesLimitBounds(t *testing.T) {
	m, srv := newTestMarket(t)

	_, err := m.Trades(context.Background(), "BNBUSDT", 1001)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = m.HistoricalTrades(context.Background(), HistoricalTradesRequest{Symbol: "BNBUSDT", Limit: 2000})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, srv.count())

	from := int64(28457)
	_, err = m.HistoricalTrades(context.Background(), HistoricalTradesRequest{Symbol: "BNBUSDT", Limit: 1000, FromID: &from})
	require.NoError(t, err)
	assert.Equal(t, "symbol=BNBUSDT&limit=1000&fromId=28457", srv.last(t).RawQuery)
}

func TestAggTradesAndKlinesClampLimit(t *testing.T) {
	m, srv := newTestMarket(t)

	_, err := m.AggTrades(context.Background(), AggTradesRequest{Symbol: "BNBUSDT", StartTime: 1, EndTime: 2, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, "symbol=BNBUSDT&startTime=1&endTime=2&limit=1000", srv.last(t).RawQuery)

	_, err = m.Klines(context.Background(), KlinesRequest{Symbol: "BNBUSDT", Interval: "1m", Limit: 1500})
	require.NoError(t, err)
	assert.Equal(t, "/api/v3/klines", srv.last(t).Path)
	assert.Equal(t, "symbol=BNBUSDT&interval=1m&limit=1000", srv.last(t).RawQuery)

	_, err = m.Klines(context.Background(), KlinesRequest{Symbol: "BNBUSDT"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMarketCallsAreUnsigned(t *testing.T) {
	m, srv := newTestMarket(t)

	_, err := m.Depth(context.Background(), "BTCUSDT", 5)
	require.NoError(t, err)
	got := srv.last(t)
	assert.NotContains(t, got.RawQuery, "signature=")
	assert.NotContains(t, got.RawQuery, "timestamp=")
	assert.Equal(t, testAPIKey, got.Header.Get("X-MBX-APIKEY"))
}
