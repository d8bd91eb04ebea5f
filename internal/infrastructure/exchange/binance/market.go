package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const maxTradesLimit = 1000

var depthLimits = []int{5, 10, 20, 50, 100, 500, 1000, 5000}

// MarketClient Binance 现货行情客户端
type MarketClient struct {
	*Client
}

// NewMarketClient creates the market-data accessor over client.
func NewMarketClient(client *Client) *MarketClient {
	return &MarketClient{Client: client}
}

// Ping tests connectivity.
func (c *MarketClient) Ping(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointPing, nil)
}

// ServerTime 获取服务器时间
func (c *MarketClient) ServerTime(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointTime, nil)
}

// ExchangeInfo returns trading rules for every symbol.
func (c *MarketClient) ExchangeInfo(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointExchangeInfo, nil)
}

// ExchangeInfoSymbol returns trading rules for one symbol.
func (c *MarketClient) ExchangeInfoSymbol(ctx context.Context, symbol string) (*Response, error) {
	if err := requireSymbol(symbol); err != nil {
		return nil, err
	}
	return c.Call(ctx, EndpointExchangeInfo, Params{}.Add("symbol", symbol))
}

// ExchangeInfoSymbols returns trading rules for several symbols. The list is
// sent as a percent-escaped JSON array in the symbols parameter.
func (c *MarketClient) ExchangeInfoSymbols(ctx context.Context, symbols []string) (*Response, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: symbols is empty", ErrInvalidArgument)
	}
	for _, s := range symbols {
		if err := requireSymbol(s); err != nil {
			return nil, err
		}
	}
	raw, err := json.Marshal(symbols)
	if err != nil {
		return nil, fmt.Errorf("encode symbols: %w", err)
	}
	return c.Call(ctx, EndpointExchangeInfo, Params{}.Add("symbols", url.QueryEscape(string(raw))))
}

// Depth 获取订单簿，limit 只能为 5, 10, 20, 50, 100, 500, 1000, 5000
func (c *MarketClient) Depth(ctx context.Context, symbol string, limit int) (*Response, error) {
	if err := requireSymbol(symbol); err != nil {
		return nil, err
	}
	if !validDepthLimit(limit) {
		return nil, fmt.Errorf("%w: limit must be one of %v", ErrInvalidArgument, depthLimits)
	}
	params := Params{}.
		Add("symbol", symbol).
		AddInt("limit", int64(limit))
	return c.Call(ctx, EndpointDepth, params)
}

// Trades returns recent trades. limit above 1000 is rejected, zero omits it.
func (c *MarketClient) Trades(ctx context.Context, symbol string, limit int) (*Response, error) {
	if err := requireSymbol(symbol); err != nil {
		return nil, err
	}
	if err := checkTradesLimit(limit); err != nil {
		return nil, err
	}
	params := Params{}.
		Add("symbol", symbol).
		AddNonZero("limit", int64(limit))
	return c.Call(ctx, EndpointTrades, params)
}

// HistoricalTradesRequest parameters for HistoricalTrades.
type HistoricalTradesRequest struct {
	Symbol string
	Limit  int
	FromID *int64
}

// HistoricalTrades returns older trades. limit above 1000 is rejected.
func (c *MarketClient) HistoricalTrades(ctx context.Context, req HistoricalTradesRequest) (*Response, error) {
	if err := requireSymbol(req.Symbol); err != nil {
		return nil, err
	}
	if err := checkTradesLimit(req.Limit); err != nil {
		return nil, err
	}
	params := Params{}.
		Add("symbol", req.Symbol).
		AddNonZero("limit", int64(req.Limit)).
		AddIntPtr("fromId", req.FromID)
	return c.Call(ctx, EndpointHistoricalTrades, params)
}

// AggTradesRequest parameters for AggTrades. Zero times and limit are omitted.
type AggTradesRequest struct {
	Symbol    string
	FromID    *int64
	StartTime int64
	EndTime   int64
	Limit     int
}

// AggTrades returns compressed trades; limit is clamped to 1000.
func (c *MarketClient) AggTrades(ctx context.Context, req AggTradesRequest) (*Response, error) {
	if err := requireSymbol(req.Symbol); err != nil {
		return nil, err
	}
	params := Params{}.
		Add("symbol", req.Symbol).
		AddIntPtr("fromId", req.FromID).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddNonZero("limit", int64(clampLimit(req.Limit)))
	return c.Call(ctx, EndpointAggTrades, params)
}

// KlinesRequest parameters for Klines. Zero times and limit are omitted.
type KlinesRequest struct {
	Symbol    string
	Interval  string
	StartTime int64
	EndTime   int64
	Limit     int
}

// Klines 获取K线，limit 超过 1000 时取 1000
func (c *MarketClient) Klines(ctx context.Context, req KlinesRequest) (*Response, error) {
	if err := requireSymbol(req.Symbol); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Interval) == "" {
		return nil, fmt.Errorf("%w: interval is required", ErrInvalidArgument)
	}
	params := Params{}.
		Add("symbol", req.Symbol).
		Add("interval", req.Interval).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddNonZero("limit", int64(clampLimit(req.Limit)))
	return c.Call(ctx, EndpointKlines, params)
}

// AvgPrice returns the current average price of symbol.
func (c *MarketClient) AvgPrice(ctx context.Context, symbol string) (*Response, error) {
	if err := requireSymbol(symbol); err != nil {
		return nil, err
	}
	return c.Call(ctx, EndpointAvgPrice, Params{}.Add("symbol", symbol))
}

// Ticker24hr returns 24h statistics; an empty symbol asks for every symbol.
func (c *MarketClient) Ticker24hr(ctx context.Context, symbol string) (*Response, error) {
	return c.Call(ctx, EndpointTicker24hr, Params{}.AddNonEmpty("symbol", symbol))
}

// TickerPrice returns the latest price; an empty symbol asks for every symbol.
func (c *MarketClient) TickerPrice(ctx context.Context, symbol string) (*Response, error) {
	return c.Call(ctx, EndpointTickerPrice, Params{}.AddNonEmpty("symbol", symbol))
}

// BookTicker returns the best bid/ask; an empty symbol asks for every symbol.
func (c *MarketClient) BookTicker(ctx context.Context, symbol string) (*Response, error) {
	return c.Call(ctx, EndpointTickerBook, Params{}.AddNonEmpty("symbol", symbol))
}

func requireSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidArgument)
	}
	return nil
}

func validDepthLimit(limit int) bool {
	for _, l := range depthLimits {
		if l == limit {
			return true
		}
	}
	return false
}

func checkTradesLimit(limit int) error {
	if limit < 0 || limit > maxTradesLimit {
		return fmt.Errorf("%w: limit must be less than or equal to %d", ErrInvalidArgument, maxTradesLimit)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit > maxTradesLimit {
		return maxTradesLimit
	}
	if limit < 0 {
		return 0
	}
	return limit
}
