package port

import (
	"context"

	"bnrest/internal/domain"
)

// CallJournal persists call records.
type CallJournal interface {
	RecordCall(ctx context.Context, rec *domain.CallRecord) error
	Close() error
}

// CallReader lists recorded calls, newest first.
type CallReader interface {
	ListCalls(ctx context.Context, limit int) ([]*domain.CallRecord, error)
}
