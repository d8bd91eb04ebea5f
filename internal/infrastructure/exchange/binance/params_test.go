package binance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParamsEncodeKeepsInsertionOrder(t *testing.T) {
	p := Params{}.Add("b", "2").Add("a", "1")
	assert.Equal(t, "b=2&a=1", p.Encode())
}

func TestParamsEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", Params{}.Encode())
	assert.Equal(t, "", Params(nil).Encode())
}

func TestParamsRepeatedKeys(t *testing.T) {
	p := Params{}.Add("asset", "BTC").Add("asset", "ETH")
	assert.Equal(t, "asset=BTC&asset=ETH", p.Encode())

	v, ok := p.Get("asset")
	assert.True(t, ok)
	assert.Equal(t, "BTC", v)
}

func TestParamsEncodeDoesNotEscape(t *testing.T) {
	p := Params{}.Add("symbols", "%5B%22BTCUSDT%22%5D").Add("note", "a b")
	assert.Equal(t, "symbols=%5B%22BTCUSDT%22%5D&note=a b", p.Encode())
}

func TestParamsTypedHelpers(t *testing.T) {
	yes := true
	id := int64(42)
	p := Params{}.
		AddInt("limit", 500).
		AddBool("flag", false).
		AddDecimal("amount", decimal.RequireFromString("0.00100")).
		AddNonEmpty("skipped", "").
		AddNonEmpty("network", "BSC").
		AddNonZero("startTime", 0).
		AddNonZero("endTime", 1700000000000).
		AddIntPtr("fromId", nil).
		AddIntPtr("walletType", &id).
		AddBoolPtr("unset", nil).
		AddBoolPtr("needBtcValuation", &yes)

	assert.Equal(t,
		"limit=500&flag=false&amount=0.001&network=BSC&endTime=1700000000000&walletType=42&needBtcValuation=true",
		p.Encode())
	assert.False(t, p.Has("skipped"))
	assert.False(t, p.Has("startTime"))
	assert.True(t, p.Has("network"))
}

func TestParamsCloneIsIndependent(t *testing.T) {
	orig := Params{}.Add("a", "1")
	cp := orig.clone()
	cp[0].Value = "changed"
	cp = cp.Add("b", "2")

	assert.Equal(t, "a=1", orig.Encode())
	assert.Equal(t, "a=changed&b=2", cp.Encode())
}
