package binance

import "net/http"

// Security tells the pipeline whether an endpoint is signed.
type Security int

const (
	// SecurityPublic endpoints get no timestamp and no signature.
	SecurityPublic Security = iota
	// SecuritySigned endpoints get a timestamp and an HMAC signature.
	SecuritySigned
)

func (s Security) String() string {
	switch s {
	case SecuritySigned:
		return "signed"
	default:
		return "public"
	}
}

// Endpoint is a declarative description of one REST call.
type Endpoint struct {
	Name     string
	Method   string
	Path     string
	Security Security
}

// market data
var (
	EndpointPing             = Endpoint{"ping", http.MethodGet, "/api/v3/ping", SecurityPublic}
	EndpointTime             = Endpoint{"time", http.MethodGet, "/api/v3/time", SecurityPublic}
	EndpointExchangeInfo     = Endpoint{"exchange_info", http.MethodGet, "/api/v3/exchangeInfo", SecurityPublic}
	EndpointDepth            = Endpoint{"depth", http.MethodGet, "/api/v3/depth", SecurityPublic}
	EndpointTrades           = Endpoint{"trades", http.MethodGet, "/api/v3/trades", SecurityPublic}
	EndpointHistoricalTrades = Endpoint{"historical_trades", http.MethodGet, "/api/v3/historicalTrades", SecurityPublic}
	EndpointAggTrades        = Endpoint{"agg_trades", http.MethodGet, "/api/v3/aggTrades", SecurityPublic}
	EndpointKlines           = Endpoint{"klines", http.MethodGet, "/api/v3/klines", SecurityPublic}
	EndpointAvgPrice         = Endpoint{"avg_price", http.MethodGet, "/api/v3/avgPrice", SecurityPublic}
	EndpointTicker24hr       = Endpoint{"ticker_24hr", http.MethodGet, "/api/v3/ticker/24hr", SecurityPublic}
	EndpointTickerPrice      = Endpoint{"ticker_price", http.MethodGet, "/api/v3/ticker/price", SecurityPublic}
	EndpointTickerBook       = Endpoint{"ticker_book", http.MethodGet, "/api/v3/ticker/bookTicker", SecurityPublic}
)

// wallet
var (
	EndpointSystemStatus              = Endpoint{"system_status", http.MethodGet, "/sapi/v1/system/status", SecurityPublic}
	EndpointCapitalConfigGetAll       = Endpoint{"capital_all", http.MethodGet, "/sapi/v1/capital/config/getall", SecuritySigned}
	EndpointAccountSnapshot           = Endpoint{"account_snapshot", http.MethodGet, "/sapi/v1/accountSnapshot", SecuritySigned}
	EndpointAssetDustBTC              = Endpoint{"asset_dust_btc", http.MethodPost, "/sapi/v1/asset/dust-btc", SecuritySigned}
	EndpointDisableFastWithdrawSwitch = Endpoint{"disable_fast_withdraw_switch", http.MethodPost, "/sapi/v1/account/disableFastWithdrawSwitch", SecuritySigned}
	EndpointEnableFastWithdrawSwitch  = Endpoint{"enable_fast_withdraw_switch", http.MethodPost, "/sapi/v1/account/enableFastWithdrawSwitch", SecuritySigned}
	EndpointWithdraw                  = Endpoint{"capital_withdraw", http.MethodPost, "/sapi/v1/capital/withdraw/apply", SecuritySigned}
	EndpointDepositHistory            = Endpoint{"capital_deposit_hisrec", http.MethodGet, "/sapi/v1/capital/deposit/hisrec", SecuritySigned}
	EndpointWithdrawHistory           = Endpoint{"capital_withdraw_history", http.MethodGet, "/sapi/v1/capital/withdraw/history", SecuritySigned}
	EndpointDepositAddress            = Endpoint{"capital_deposit_address", http.MethodGet, "/sapi/v1/capital/deposit/address", SecuritySigned}
	EndpointAccountStatus             = Endpoint{"account_status", http.MethodGet, "/sapi/v1/account/status", SecuritySigned}
	EndpointAPITradingStatus          = Endpoint{"account_api_trading_status", http.MethodGet, "/sapi/v1/account/apiTradingStatus", SecuritySigned}
	EndpointDribblet                  = Endpoint{"asset_dribblet", http.MethodGet, "/sapi/v1/asset/dribblet", SecuritySigned}
	EndpointDust                      = Endpoint{"asset_dust", http.MethodPost, "/sapi/v1/asset/dust", SecuritySigned}
	EndpointAssetDividend             = Endpoint{"asset_dividend", http.MethodGet, "/sapi/v1/asset/assetDividend", SecuritySigned}
	EndpointAssetDetail               = Endpoint{"asset_detail", http.MethodGet, "/sapi/v1/asset/assetDetail", SecuritySigned}
	EndpointTradeFee                  = Endpoint{"asset_trade_fee", http.MethodGet, "/sapi/v1/asset/tradeFee", SecuritySigned}
	EndpointTransfer                  = Endpoint{"make_asset_transfer", http.MethodPost, "/sapi/v1/asset/transfer", SecuritySigned}
	EndpointTransferHistory           = Endpoint{"get_asset_transfer", http.MethodGet, "/sapi/v1/asset/transfer", SecuritySigned}
	EndpointFundingAsset              = Endpoint{"get_funding_asset", http.MethodPost, "/sapi/v1/asset/get-funding-asset", SecuritySigned}
	EndpointAPIRestrictions           = Endpoint{"account_api_restrictions", http.MethodGet, "/sapi/v1/account/apiRestrictions", SecuritySigned}
)

var catalog = []Endpoint{
	EndpointPing,
	EndpointTime,
	EndpointExchangeInfo,
	EndpointDepth,
	EndpointTrades,
	EndpointHistoricalTrades,
	EndpointAggTrades,
	EndpointKlines,
	EndpointAvgPrice,
	EndpointTicker24hr,
	EndpointTickerPrice,
	EndpointTickerBook,

	EndpointSystemStatus,
	EndpointCapitalConfigGetAll,
	EndpointAccountSnapshot,
	EndpointAssetDustBTC,
	EndpointDisableFastWithdrawSwitch,
	EndpointEnableFastWithdrawSwitch,
	EndpointWithdraw,
	EndpointDepositHistory,
	EndpointWithdrawHistory,
	EndpointDepositAddress,
	EndpointAccountStatus,
	EndpointAPITradingStatus,
	EndpointDribblet,
	EndpointDust,
	EndpointAssetDividend,
	EndpointAssetDetail,
	EndpointTradeFee,
	EndpointTransfer,
	EndpointTransferHistory,
	EndpointFundingAsset,
	EndpointAPIRestrictions,
}

var catalogByName = func() map[string]Endpoint {
	m := make(map[string]Endpoint, len(catalog))
	for _, ep := range catalog {
		m[ep.Name] = ep
	}
	return m
}()

// Endpoints returns a copy of the catalog in declaration order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(catalog))
	copy(out, catalog)
	return out
}

// LookupEndpoint finds a catalog entry by name.
func LookupEndpoint(name string) (Endpoint, bool) {
	ep, ok := catalogByName[name]
	return ep, ok
}
