package binance

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetTransferType is the type parameter of universal asset transfers.
type AssetTransferType string

const (
	TransferMainUMFuture                 AssetTransferType = "MAIN_UMFUTURE"
	TransferMainCMFuture                 AssetTransferType = "MAIN_CMFUTURE"
	TransferMainMargin                   AssetTransferType = "MAIN_MARGIN"
	TransferUMFutureMain                 AssetTransferType = "UMFUTURE_MAIN"
	TransferUMFutureMargin               AssetTransferType = "UMFUTURE_MARGIN"
	TransferCMFutureMain                 AssetTransferType = "CMFUTURE_MAIN"
	TransferMarginMain                   AssetTransferType = "MARGIN_MAIN"
	TransferMarginUMFuture               AssetTransferType = "MARGIN_UMFUTURE"
	TransferMarginCMFuture               AssetTransferType = "MARGIN_CMFUTURE"
	TransferCMFutureMargin               AssetTransferType = "CMFUTURE_MARGIN"
	TransferIsolatedMarginMargin         AssetTransferType = "ISOLATEDMARGIN_MARGIN"
	TransferMarginIsolatedMargin         AssetTransferType = "MARGIN_ISOLATEDMARGIN"
	TransferIsolatedMarginIsolatedMargin AssetTransferType = "ISOLATEDMARGIN_ISOLATEDMARGIN"
	TransferMainFunding                  AssetTransferType = "MAIN_FUNDING"
	TransferFundingMain                  AssetTransferType = "FUNDING_MAIN"
	TransferFundingUMFuture              AssetTransferType = "FUNDING_UMFUTURE"
	TransferUMFutureFunding              AssetTransferType = "UMFUTURE_FUNDING"
	TransferMarginFunding                AssetTransferType = "MARGIN_FUNDING"
	TransferFundingMargin                AssetTransferType = "FUNDING_MARGIN"
	TransferFundingCMFuture              AssetTransferType = "FUNDING_CMFUTURE"
	TransferCMFutureFunding              AssetTransferType = "CMFUTURE_FUNDING"
)

var assetTransferTypes = map[AssetTransferType]struct{}{
	TransferMainUMFuture: {}, TransferMainCMFuture: {}, TransferMainMargin: {},
	TransferUMFutureMain: {}, TransferUMFutureMargin: {}, TransferCMFutureMain: {},
	TransferMarginMain: {}, TransferMarginUMFuture: {}, TransferMarginCMFuture: {},
	TransferCMFutureMargin: {}, TransferIsolatedMarginMargin: {}, TransferMarginIsolatedMargin: {},
	TransferIsolatedMarginIsolatedMargin: {}, TransferMainFunding: {}, TransferFundingMain: {},
	TransferFundingUMFuture: {}, TransferUMFutureFunding: {}, TransferMarginFunding: {},
	TransferFundingMargin: {}, TransferFundingCMFuture: {}, TransferCMFutureFunding: {},
}

// Valid reports whether t is a known transfer type.
func (t AssetTransferType) Valid() bool {
	_, ok := assetTransferTypes[t]
	return ok
}

func (t AssetTransferType) String() string {
	return string(t)
}

// WalletClient Binance 钱包接口客户端
type WalletClient struct {
	*Client
}

// NewWalletClient creates the wallet accessor over client.
func NewWalletClient(client *Client) *WalletClient {
	return &WalletClient{Client: client}
}

// SystemStatus 获取系统状态
func (c *WalletClient) SystemStatus(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointSystemStatus, nil)
}

// CapitalConfigGetAll returns coin information for the account.
func (c *WalletClient) CapitalConfigGetAll(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointCapitalConfigGetAll, nil)
}

// AccountSnapshotRequest parameters for AccountSnapshot; Type is SPOT, MARGIN or FUTURES.
type AccountSnapshotRequest struct {
	Type      string
	StartTime int64
	EndTime   int64
	Limit     int
}

// AccountSnapshot 获取每日资产快照
func (c *WalletClient) AccountSnapshot(ctx context.Context, req AccountSnapshotRequest) (*Response, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, fmt.Errorf("%w: account type is required", ErrInvalidArgument)
	}
	params := Params{}.
		Add("type", req.Type).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddNonZero("limit", int64(req.Limit))
	return c.Call(ctx, EndpointAccountSnapshot, params)
}

// AssetDustBTC lists assets convertible to BNB.
func (c *WalletClient) AssetDustBTC(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointAssetDustBTC, nil)
}

// DisableFastWithdrawSwitch turns fast withdraw off.
func (c *WalletClient) DisableFastWithdrawSwitch(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointDisableFastWithdrawSwitch, nil)
}

// EnableFastWithdrawSwitch turns fast withdraw on.
func (c *WalletClient) EnableFastWithdrawSwitch(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointEnableFastWithdrawSwitch, nil)
}

// WithdrawRequest parameters for Withdraw. Empty strings and nil pointers are omitted.
type WithdrawRequest struct {
	Coin               string
	Address            string
	Amount             decimal.Decimal
	WithdrawOrderID    string
	Network            string
	AddressTag         string
	TransactionFeeFlag *bool
	Name               string
	WalletType         *int64
}

// Withdraw 提币，非幂等，只发送一次，不重试
func (c *WalletClient) Withdraw(ctx context.Context, req WithdrawRequest) (*Response, error) {
	if strings.TrimSpace(req.Coin) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, fmt.Errorf("%w: coin and address are required", ErrInvalidArgument)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	params := Params{}.
		Add("coin", req.Coin).
		Add("address", req.Address).
		AddDecimal("amount", req.Amount).
		AddNonEmpty("withdrawOrderId", req.WithdrawOrderID).
		AddNonEmpty("network", req.Network).
		AddNonEmpty("addressTag", req.AddressTag).
		AddBoolPtr("transactionFeeFlag", req.TransactionFeeFlag).
		AddNonEmpty("name", req.Name).
		AddIntPtr("walletType", req.WalletType)
	return c.Call(ctx, EndpointWithdraw, params)
}

// DepositHistoryRequest parameters for DepositHistory.
type DepositHistoryRequest struct {
	Coin      string
	Status    *int64
	StartTime int64
	EndTime   int64
	Offset    *int64
	Limit     int
}

// DepositHistory 获取充值历史
func (c *WalletClient) DepositHistory(ctx context.Context, req DepositHistoryRequest) (*Response, error) {
	params := Params{}.
		AddNonEmpty("coin", req.Coin).
		AddIntPtr("status", req.Status).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddIntPtr("offset", req.Offset).
		AddNonZero("limit", int64(req.Limit))
	return c.Call(ctx, EndpointDepositHistory, params)
}

// WithdrawHistoryRequest parameters for WithdrawHistory.
type WithdrawHistoryRequest struct {
	Coin            string
	WithdrawOrderID string
	Status          *int64
	StartTime       int64
	EndTime         int64
	Offset          *int64
	Limit           int
}

// WithdrawHistory 获取提币历史
func (c *WalletClient) WithdrawHistory(ctx context.Context, req WithdrawHistoryRequest) (*Response, error) {
	params := Params{}.
		AddNonEmpty("coin", req.Coin).
		AddNonEmpty("withdrawOrderId", req.WithdrawOrderID).
		AddIntPtr("status", req.Status).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddIntPtr("offset", req.Offset).
		AddNonZero("limit", int64(req.Limit))
	return c.Call(ctx, EndpointWithdrawHistory, params)
}

// DepositAddress returns the deposit address of coin; network may be empty.
func (c *WalletClient) DepositAddress(ctx context.Context, coin, network string) (*Response, error) {
	if strings.TrimSpace(coin) == "" {
		return nil, fmt.Errorf("%w: coin is required", ErrInvalidArgument)
	}
	params := Params{}.
		Add("coin", coin).
		AddNonEmpty("network", network)
	return c.Call(ctx, EndpointDepositAddress, params)
}

// AccountStatus 获取账户状态
func (c *WalletClient) AccountStatus(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointAccountStatus, nil)
}

// APITradingStatus returns the API trading status of the account.
func (c *WalletClient) APITradingStatus(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointAPITradingStatus, nil)
}

// Dribblet 获取小额资产转换历史，时间为 0 时省略
func (c *WalletClient) Dribblet(ctx context.Context, startTime, endTime int64) (*Response, error) {
	params := Params{}.
		AddNonZero("startTime", startTime).
		AddNonZero("endTime", endTime)
	return c.Call(ctx, EndpointDribblet, params)
}

// Dust converts small balances to BNB. Each asset is sent as its own asset
// parameter, in the given order.
func (c *WalletClient) Dust(ctx context.Context, assets []string) (*Response, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: at least one asset is required", ErrInvalidArgument)
	}
	var params Params
	for _, a := range assets {
		if strings.TrimSpace(a) == "" {
			return nil, fmt.Errorf("%w: empty asset", ErrInvalidArgument)
		}
		params = params.Add("asset", a)
	}
	return c.Call(ctx, EndpointDust, params)
}

// AssetDividendRequest parameters for AssetDividend.
type AssetDividendRequest struct {
	Asset     string
	StartTime int64
	EndTime   int64
	Limit     int
}

// AssetDividend 获取资产分红记录
func (c *WalletClient) AssetDividend(ctx context.Context, req AssetDividendRequest) (*Response, error) {
	params := Params{}.
		AddNonEmpty("asset", req.Asset).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddNonZero("limit", int64(req.Limit))
	return c.Call(ctx, EndpointAssetDividend, params)
}

// AssetDetail returns asset details; an empty asset asks for all of them.
func (c *WalletClient) AssetDetail(ctx context.Context, asset string) (*Response, error) {
	return c.Call(ctx, EndpointAssetDetail, Params{}.AddNonEmpty("asset", asset))
}

// TradeFee returns trade fees; an empty symbol asks for all of them.
func (c *WalletClient) TradeFee(ctx context.Context, symbol string) (*Response, error) {
	return c.Call(ctx, EndpointTradeFee, Params{}.AddNonEmpty("symbol", symbol))
}

// TransferRequest parameters for Transfer. FromSymbol and ToSymbol are used by
// isolated margin transfers only.
type TransferRequest struct {
	Type       AssetTransferType
	Asset      string
	Amount     decimal.Decimal
	FromSymbol string
	ToSymbol   string
}

// Transfer 万向划转，只发送一次，不重试
func (c *WalletClient) Transfer(ctx context.Context, req TransferRequest) (*Response, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transfer type %q", ErrInvalidArgument, req.Type)
	}
	if strings.TrimSpace(req.Asset) == "" {
		return nil, fmt.Errorf("%w: asset is required", ErrInvalidArgument)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	params := Params{}.
		Add("type", req.Type.String()).
		Add("asset", req.Asset).
		AddDecimal("amount", req.Amount).
		AddNonEmpty("fromSymbol", req.FromSymbol).
		AddNonEmpty("toSymbol", req.ToSymbol)
	return c.Call(ctx, EndpointTransfer, params)
}

// TransferHistoryRequest parameters for TransferHistory.
type TransferHistoryRequest struct {
	Type       AssetTransferType
	StartTime  int64
	EndTime    int64
	Current    int
	Size       int
	FromSymbol string
	ToSymbol   string
}

// TransferHistory 查询万向划转历史
func (c *WalletClient) TransferHistory(ctx context.Context, req TransferHistoryRequest) (*Response, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transfer type %q", ErrInvalidArgument, req.Type)
	}
	params := Params{}.
		Add("type", req.Type.String()).
		AddNonZero("startTime", req.StartTime).
		AddNonZero("endTime", req.EndTime).
		AddNonZero("current", int64(req.Current)).
		AddNonZero("size", int64(req.Size)).
		AddNonEmpty("fromSymbol", req.FromSymbol).
		AddNonEmpty("toSymbol", req.ToSymbol)
	return c.Call(ctx, EndpointTransferHistory, params)
}

// FundingAsset returns funding wallet balances; asset may be empty.
func (c *WalletClient) FundingAsset(ctx context.Context, asset string, needBTCValuation *bool) (*Response, error) {
	params := Params{}.
		AddNonEmpty("asset", asset).
		AddBoolPtr("needBtcValuation", needBTCValuation)
	return c.Call(ctx, EndpointFundingAsset, params)
}

// APIRestrictions returns the permissions of the API key.
func (c *WalletClient) APIRestrictions(ctx context.Context) (*Response, error) {
	return c.Call(ctx, EndpointAPIRestrictions, nil)
}
