package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"bnrest/internal/domain"
)

func TestPostgresRepoRecordAndList(t *testing.T) {
	dsn := os.Getenv("BNREST_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BNREST_TEST_POSTGRES_DSN not set")
	}

	repo, err := New(dsn)
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	rec := &domain.CallRecord{
		ID:         uuid.NewString(),
		Method:     "GET",
		Path:       "/api/v3/ping",
		StatusCode: 200,
		DurationMs: 7,
		TsMs:       4102444800000, // 2100-01-01, sorts first
	}
	if err := repo.RecordCall(ctx, rec); err != nil {
		t.Fatalf("RecordCall failed: %v", err)
	}
	defer repo.db.ExecContext(ctx, `DELETE FROM calls WHERE id=$1`, rec.ID)

	calls, err := repo.ListCalls(ctx, 1)
	if err != nil {
		t.Fatalf("ListCalls failed: %v", err)
	}
	if len(calls) != 1 || *calls[0] != *rec {
		t.Errorf("expected %+v, got %+v", rec, calls)
	}
}
