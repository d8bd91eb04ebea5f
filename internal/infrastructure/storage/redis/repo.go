package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bnrest/internal/application/port"
	"bnrest/internal/domain"
)

type Repo struct {
	rdb        *redis.Client
	prefix     string
	ttl        time.Duration
	keyLatest  string // prefix + ":latest"
	callStream string
	callChan   string
}

// LatestStatus is the last outcome seen for one method and path.
type LatestStatus struct {
	ID         string `json:"id"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error,omitempty"`
	Ts         int64  `json:"ts"`
}

func New(rdb *redis.Client, prefix string, ttl time.Duration, callStream, callChan string) *Repo {
	if strings.TrimSpace(callStream) == "" {
		callStream = prefix + ":calls"
	}
	if strings.TrimSpace(callChan) == "" {
		callChan = prefix + ":calls:pub"
	}
	return &Repo{
		rdb:        rdb,
		prefix:     prefix,
		ttl:        ttl,
		keyLatest:  prefix + ":latest",
		callStream: callStream,
		callChan:   callChan,
	}
}

func (r *Repo) RecordCall(ctx context.Context, rec *domain.CallRecord) error {
	// 1) Stream: XADD <stream> * id method path ...
	_, err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.callStream,
		Values: map[string]any{
			"id":          rec.ID,
			"method":      rec.Method,
			"path":        rec.Path,
			"signed":      rec.Signed,
			"status_code": rec.StatusCode,
			"duration_ms": rec.DurationMs,
			"error":       rec.Error,
			"ts_ms":       rec.TsMs,
		},
	}).Result()
	if err != nil {
		return err
	}

	// 2) Hash: field = "GET /api/v3/ping" -> json
	latest, _ := json.Marshal(LatestStatus{ID: rec.ID, StatusCode: rec.StatusCode, Error: rec.Error, Ts: rec.TsMs})
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, r.keyLatest, rec.Method+" "+rec.Path, string(latest))
	if r.ttl > 0 {
		pipe.Expire(ctx, r.keyLatest, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// 3) PubSub: PUBLISH <channel> json
	msg, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.callChan, msg).Err()
}

// Latest returns the last status recorded for method and path.
func (r *Repo) Latest(ctx context.Context, method, path string) (*LatestStatus, error) {
	raw, err := r.rdb.HGet(ctx, r.keyLatest, method+" "+path).Result()
	if err != nil {
		return nil, err
	}
	var ls LatestStatus
	if err := json.Unmarshal([]byte(raw), &ls); err != nil {
		return nil, err
	}
	return &ls, nil
}

// Close is a no-op; the redis client is owned by the caller.
func (r *Repo) Close() error { return nil }

var _ port.CallJournal = (*Repo)(nil)
