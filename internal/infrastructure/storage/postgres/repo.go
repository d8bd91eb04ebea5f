package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"bnrest/internal/application/port"
	"bnrest/internal/domain"
)

const defaultListLimit = 50

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS calls (
  id TEXT PRIMARY KEY,
  method TEXT NOT NULL,
  path TEXT NOT NULL,
  signed BOOLEAN NOT NULL,
  status_code INTEGER NOT NULL,
  duration_ms BIGINT NOT NULL,
  error TEXT NOT NULL DEFAULT '',
  ts_ms BIGINT NOT NULL,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calls_ts ON calls(ts_ms);
`)
	return err
}

func (r *Repo) RecordCall(ctx context.Context, rec *domain.CallRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calls(id, method, path, signed, status_code, duration_ms, error, ts_ms, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, rec.Method, rec.Path, rec.Signed, rec.StatusCode, rec.DurationMs, rec.Error, rec.TsMs, time.Now().UnixMilli())
	return err
}

// ListCalls returns up to limit records, newest first.
func (r *Repo) ListCalls(ctx context.Context, limit int) ([]*domain.CallRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, method, path, signed, status_code, duration_ms, error, ts_ms
		FROM calls ORDER BY ts_ms DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []*domain.CallRecord
	for rows.Next() {
		var rec domain.CallRecord
		if err := rows.Scan(&rec.ID, &rec.Method, &rec.Path, &rec.Signed, &rec.StatusCode, &rec.DurationMs, &rec.Error, &rec.TsMs); err != nil {
			return nil, err
		}
		calls = append(calls, &rec)
	}
	return calls, rows.Err()
}

var (
	_ port.CallJournal = (*Repo)(nil)
	_ port.CallReader  = (*Repo)(nil)
)
