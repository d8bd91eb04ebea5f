package factory

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"bnrest/internal/infrastructure/config"
	"bnrest/internal/infrastructure/exchange/binance"
)

// APIClients API 客户端容器
// 职责: 只管理 Binance 客户端的初始化
type APIClients struct {
	Client *binance.Client
	Market *binance.MarketClient
	Wallet *binance.WalletClient
}

// NewAPIClients builds the REST client from cfg. observer may be nil.
func NewAPIClients(cfg *config.Config, creds *binance.Credentials, observer binance.CallObserver) (*APIClients, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	client, err := binance.New(creds, ClientOptions(cfg.Binance, observer)...)
	if err != nil {
		return nil, fmt.Errorf("binance client: %w", err)
	}

	log.Info().
		Str("base_url", client.BaseURL()).
		Bool("proxied", client.Proxied()).
		Int64("recv_window", cfg.Binance.RecvWindow).
		Msg("✓ Binance REST client initialized")

	return &APIClients{
		Client: client,
		Market: binance.NewMarketClient(client),
		Wallet: binance.NewWalletClient(client),
	}, nil
}

// ClientOptions maps the [binance] config section to client options.
func ClientOptions(cfg config.BinanceConfig, observer binance.CallObserver) []binance.Option {
	opts := []binance.Option{
		binance.WithBaseURL(cfg.BaseURL),
		binance.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		binance.WithRecvWindow(cfg.RecvWindow),
	}
	if cfg.ProxyURL != "" {
		opts = append(opts, binance.WithProxy(cfg.ProxyURL))
	}
	if h := cfg.ProxyHeaderSet(); h != nil {
		opts = append(opts, binance.WithProxyHeaders(h))
	}
	if observer != nil {
		opts = append(opts, binance.WithCallObserver(observer))
	}
	return opts
}
