package binance

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(t *testing.T) (*WalletClient, *stubServer) {
	t.Helper()
	srv := newStubServer(t, http.StatusOK, `{}`)
	return NewWalletClient(newTestClient(t, srv.URL)), srv
}

// signedPayload returns the canonical part of a signed payload and checks its signature.
func signedPayload(t *testing.T, wire string) string {
	t.Helper()
	idx := strings.LastIndex(wire, "&signature=")
	require.Positive(t, idx, "payload %q carries no signature", wire)
	canonical := wire[:idx]
	assert.Equal(t, Sign(canonical, testSecret), wire[idx+len("&signature="):])
	return canonical
}

func TestSystemStatusIsPublic(t *testing.T) {
	w, srv := newTestWallet(t)

	_, err := w.SystemStatus(context.Background())
	require.NoError(t, err)
	got := srv.last(t)
	assert.Equal(t, "/sapi/v1/system/status", got.Path)
	assert.Empty(t, got.RawQuery)
}

func TestWalletSignedGets(t *testing.T) {
	w, srv := newTestWallet(t)
	ctx := context.Background()
	status := int64(1)

	tests := []struct {
		name          string
		call          func() (*Response, error)
		wantPath      string
		wantCanonical string
	}{
		{"capital all", func() (*Response, error) { return w.CapitalConfigGetAll(ctx) }, "/sapi/v1/capital/config/getall", "timestamp=1620000000000"},
		{"snapshot", func() (*Response, error) {
			return w.AccountSnapshot(ctx, AccountSnapshotRequest{Type: "SPOT", Limit: 7})
		}, "/sapi/v1/accountSnapshot", "type=SPOT&limit=7&timestamp=1620000000000"},
		{"deposit history", func() (*Response, error) {
			return w.DepositHistory(ctx, DepositHistoryRequest{Coin: "USDT", Status: &status})
		}, "/sapi/v1/capital/deposit/hisrec", "coin=USDT&status=1&timestamp=1620000000000"},
		{"withdraw history", func() (*Response, error) {
			return w.WithdrawHistory(ctx, WithdrawHistoryRequest{WithdrawOrderID: "abc", Limit: 10})
		}, "/sapi/v1/capital/withdraw/history", "withdrawOrderId=abc&limit=10&timestamp=1620000000000"},
		{"deposit address", func() (*Response, error) { return w.DepositAddress(ctx, "BNB", "BSC") }, "/sapi/v1/capital/deposit/address", "coin=BNB&network=BSC&timestamp=1620000000000"},
		{"account status", func() (*Response, error) { return w.AccountStatus(ctx) }, "/sapi/v1/account/status", "timestamp=1620000000000"},
		{"api trading status", func() (*Response, error) { return w.APITradingStatus(ctx) }, "/sapi/v1/account/apiTradingStatus", "timestamp=1620000000000"},
		{"dribblet", func() (*Response, error) { return w.Dribblet(ctx, 0, 1700000000000) }, "/sapi/v1/asset/dribblet", "endTime=1700000000000&timestamp=1620000000000"},
		{"dividend", func() (*Response, error) {
			return w.AssetDividend(ctx, AssetDividendRequest{Asset: "BNB", Limit: 20})
		}, "/sapi/v1/asset/assetDividend", "asset=BNB&limit=20&timestamp=1620000000000"},
		{"asset detail", func() (*Response, error) { return w.AssetDetail(ctx, "") }, "/sapi/v1/asset/assetDetail", "timestamp=1620000000000"},
		{"trade fee", func() (*Response, error) { return w.TradeFee(ctx, "BTCUSDT") }, "/sapi/v1/asset/tradeFee", "symbol=BTCUSDT&timestamp=1620000000000"},
		{"transfer history", func() (*Response, error) {
			return w.TransferHistory(ctx, TransferHistoryRequest{Type: TransferMainUMFuture, Size: 100})
		}, "/sapi/v1/asset/transfer", "type=MAIN_UMFUTURE&size=100&timestamp=1620000000000"},
		{"api restrictions", func() (*Response, error) { return w.APIRestrictions(ctx) }, "/sapi/v1/account/apiRestrictions", "timestamp=1620000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.NoError(t, err)
			got := srv.last(t)
			assert.Equal(t, http.MethodGet, got.Method)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantCanonical, signedPayload(t, got.RawQuery))
		})
	}
}

func TestWalletSignedPosts(t *testing.T) {
	w, srv := newTestWallet(t)
	ctx := context.Background()
	needBTC := true

	tests := []struct {
		name          string
		call          func() (*Response, error)
		wantPath      string
		wantCanonical string
	}{
		{"dust btc", func() (*Response, error) { return w.AssetDustBTC(ctx) }, "/sapi/v1/asset/dust-btc", "timestamp=1620000000000"},
		{"disable fast withdraw", func() (*Response, error) { return w.DisableFastWithdrawSwitch(ctx) }, "/sapi/v1/account/disableFastWithdrawSwitch", "timestamp=1620000000000"},
		{"enable fast withdraw", func() (*Response, error) { return w.EnableFastWithdrawSwitch(ctx) }, "/sapi/v1/account/enableFastWithdrawSwitch", "timestamp=1620000000000"},
		{"dust", func() (*Response, error) { return w.Dust(ctx, []string{"ETH", "LTC", "TRX"}) }, "/sapi/v1/asset/dust", "asset=ETH&asset=LTC&asset=TRX&timestamp=1620000000000"},
		{"funding asset", func() (*Response, error) { return w.FundingAsset(ctx, "USDT", &needBTC) }, "/sapi/v1/asset/get-funding-asset", "asset=USDT&needBtcValuation=true&timestamp=1620000000000"},
		{"transfer", func() (*Response, error) {
			return w.Transfer(ctx, TransferRequest{
				Type:   TransferMainFunding,
				Asset:  "USDT",
				Amount: decimal.RequireFromString("12.50"),
			})
		}, "/sapi/v1/asset/transfer", "type=MAIN_FUNDING&asset=USDT&amount=12.5&timestamp=1620000000000"},
		{"withdraw", func() (*Response, error) {
			return w.Withdraw(ctx, WithdrawRequest{
				Coin:    "BNB",
				Address: "bnb1addr",
				Amount:  decimal.RequireFromString("0.01"),
				Network: "BSC",
			})
		}, "/sapi/v1/capital/withdraw/apply", "coin=BNB&address=bnb1addr&amount=0.01&network=BSC&timestamp=1620000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.NoError(t, err)
			got := srv.last(t)
			assert.Equal(t, http.MethodPost, got.Method)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Empty(t, got.RawQuery)
			assert.Equal(t, formContentType, got.Header.Get("Content-Type"))
			assert.Equal(t, tt.wantCanonical, signedPayload(t, got.Body))
		})
	}
}

func TestWalletValidation(t *testing.T) {
	w, srv := newTestWallet(t)
	ctx := context.Background()

	calls := map[string]func() (*Response, error){
		"snapshot without type": func() (*Response, error) { return w.AccountSnapshot(ctx, AccountSnapshotRequest{}) },
		"withdraw without address": func() (*Response, error) {
			return w.Withdraw(ctx, WithdrawRequest{Coin: "BNB", Amount: decimal.NewFromInt(1)})
		},
		"withdraw zero amount": func() (*Response, error) {
			return w.Withdraw(ctx, WithdrawRequest{Coin: "BNB", Address: "x"})
		},
		"deposit address without coin": func() (*Response, error) { return w.DepositAddress(ctx, "", "") },
		"dust without assets":          func() (*Response, error) { return w.Dust(ctx, nil) },
		"dust with blank asset":        func() (*Response, error) { return w.Dust(ctx, []string{"ETH", " "}) },
		"transfer unknown type": func() (*Response, error) {
			return w.Transfer(ctx, TransferRequest{Type: "MAIN_MOON", Asset: "USDT", Amount: decimal.NewFromInt(1)})
		},
		"transfer negative amount": func() (*Response, error) {
			return w.Transfer(ctx, TransferRequest{Type: TransferMainMargin, Asset: "USDT", Amount: decimal.NewFromInt(-1)})
		},
		"transfer history unknown type": func() (*Response, error) {
			return w.TransferHistory(ctx, TransferHistoryRequest{})
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	assert.Zero(t, srv.count())
}

func TestAssetTransferTypeValid(t *testing.T) {
	assert.True(t, TransferIsolatedMarginIsolatedMargin.Valid())
	assert.True(t, AssetTransferType("FUNDING_CMFUTURE").Valid())
	assert.False(t, AssetTransferType("main_umfuture").Valid())
	assert.Equal(t, "MARGIN_FUNDING", TransferMarginFunding.String())
}
