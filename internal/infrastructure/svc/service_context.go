package svc

import (
	"context"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bnrest/internal/application/port"
	"bnrest/internal/application/service"
	"bnrest/internal/infrastructure/config"
	"bnrest/internal/infrastructure/exchange/binance"
	"bnrest/internal/infrastructure/factory"
	"bnrest/internal/infrastructure/storage/composite"
	pgrepo "bnrest/internal/infrastructure/storage/postgres"
	redisrepo "bnrest/internal/infrastructure/storage/redis"
	sqliterepo "bnrest/internal/infrastructure/storage/sqlite"
)

type ServiceContext struct {
	Ctx    context.Context
	Config *config.Config

	// 基础设施层（第一层初始化）
	apiClients   *factory.APIClients
	redisClient  *redisclient.Client
	redisRepo    *redisrepo.Repo
	sqliteRepo   *sqliterepo.Repo
	postgresRepo *pgrepo.Repo

	// 调用日志
	journal *composite.Repo

	// 资源管理
	closerChain []func() error
}

// New 创建并初始化 ServiceContext，先初始化存储，再把调用日志接入客户端
func New(ctx context.Context, cfg *config.Config, creds *binance.Credentials) (*ServiceContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	sc := &ServiceContext{
		Ctx:         ctx,
		Config:      cfg,
		closerChain: make([]func() error, 0),
	}

	if err := sc.initializeStorage(); err != nil {
		_ = sc.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageInitFailed, err)
	}

	var observer binance.CallObserver
	if sc.journal.Len() > 0 {
		recorder := service.NewCallRecorder(sc.journal, 0)
		observer = factory.NewJournalObserver(recorder)
	}

	apiClients, err := factory.NewAPIClients(cfg, creds, observer)
	if err != nil {
		_ = sc.Close()
		return nil, fmt.Errorf("failed to initialize api clients: %w", err)
	}
	sc.apiClients = apiClients

	log.Info().
		Int("journals", sc.journal.Len()).
		Msg("✓ All components initialized")
	return sc, nil
}

// NewJournalReader 创建只读 ServiceContext，仅打开可查询的调用日志 (SQLite, Postgres)，
// 不需要凭证，也不创建 API 客户端，只用于 CallReader
func NewJournalReader(ctx context.Context, cfg *config.Config) (*ServiceContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	sc := &ServiceContext{
		Ctx:         ctx,
		Config:      cfg,
		closerChain: make([]func() error, 0),
	}

	if cfg.Journal.SQLite.Enabled {
		if err := sc.initSQLite(); err != nil {
			_ = sc.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorageInitFailed, err)
		}
	}
	if cfg.Journal.Postgres.Enabled {
		if err := sc.initPostgres(); err != nil {
			_ = sc.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorageInitFailed, err)
		}
	}
	return sc, nil
}

// initializeStorage 初始化调用日志存储 (Redis, SQLite, Postgres)
func (sc *ServiceContext) initializeStorage() error {
	if sc.Config.Journal.Redis.Enabled {
		if err := sc.initRedis(); err != nil {
			return fmt.Errorf("redis initialization failed: %w", err)
		}
	}

	if sc.Config.Journal.SQLite.Enabled {
		if err := sc.initSQLite(); err != nil {
			return fmt.Errorf("sqlite initialization failed: %w", err)
		}
	}

	if sc.Config.Journal.Postgres.Enabled {
		if err := sc.initPostgres(); err != nil {
			return fmt.Errorf("postgres initialization failed: %w", err)
		}
	}

	// nil repos are filtered by composite.New
	var journals []port.CallJournal
	if sc.redisRepo != nil {
		journals = append(journals, sc.redisRepo)
	}
	if sc.sqliteRepo != nil {
		journals = append(journals, sc.sqliteRepo)
	}
	if sc.postgresRepo != nil {
		journals = append(journals, sc.postgresRepo)
	}
	sc.journal = composite.New(journals...)
	return nil
}

// initRedis 初始化 Redis 连接
func (sc *ServiceContext) initRedis() error {
	rc := sc.Config.Journal.Redis
	rdb := redisclient.NewClient(&redisclient.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(sc.Ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	sc.redisClient = rdb
	ttl := time.Duration(rc.TTLSeconds) * time.Second
	sc.redisRepo = redisrepo.New(rdb, rc.Prefix, ttl, rc.Stream, rc.Channel)

	// 注册关闭回调
	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing redis connection")
		return rdb.Close()
	})

	log.Info().
		Str("addr", rc.Addr).
		Int("db", rc.DB).
		Msg("✓ Redis initialized")

	return nil
}

// initSQLite 初始化 SQLite 数据库
func (sc *ServiceContext) initSQLite() error {
	repo, err := sqliterepo.New(sc.Config.Journal.SQLite.Path)
	if err != nil {
		return fmt.Errorf("sqlite repo creation failed: %w", err)
	}

	sc.sqliteRepo = repo

	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing sqlite connection")
		return repo.Close()
	})

	log.Info().
		Str("path", sc.Config.Journal.SQLite.Path).
		Msg("✓ SQLite initialized")

	return nil
}

// initPostgres 初始化 Postgres 数据库
func (sc *ServiceContext) initPostgres() error {
	repo, err := pgrepo.New(sc.Config.Journal.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("postgres repo creation failed: %w", err)
	}

	sc.postgresRepo = repo

	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing postgres connection")
		return repo.Close()
	})

	log.Info().Msg("✓ Postgres initialized")

	return nil
}

// Client 获取 REST 客户端
func (sc *ServiceContext) Client() *binance.Client {
	return sc.apiClients.Client
}

// Market 获取行情接口
func (sc *ServiceContext) Market() *binance.MarketClient {
	return sc.apiClients.Market
}

// Wallet 获取钱包接口
func (sc *ServiceContext) Wallet() *binance.WalletClient {
	return sc.apiClients.Wallet
}

// CallReader returns the journal the CLI lists calls from, preferring sqlite.
func (sc *ServiceContext) CallReader() (port.CallReader, error) {
	switch {
	case sc.sqliteRepo != nil:
		return sc.sqliteRepo, nil
	case sc.postgresRepo != nil:
		return sc.postgresRepo, nil
	default:
		return nil, ErrNoCallReader
	}
}

// RequestContext derives a context bounded by binance.request_timeout_sec.
func (sc *ServiceContext) RequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(sc.Ctx, sc.Config.Binance.RequestTimeout())
}

// Close 关闭 ServiceContext 中的所有资源
// 按照相反的顺序关闭
func (sc *ServiceContext) Close() error {
	for i := len(sc.closerChain) - 1; i >= 0; i-- {
		if err := sc.closerChain[i](); err != nil {
			log.Error().Err(err).Msg("error closing resource")
		}
	}
	sc.closerChain = nil
	return nil
}
