package storage

import (
	"context"
	"sync"

	"bnrest/internal/application/port"
	"bnrest/internal/domain"
)

// NoopJournal drops every record. It is used when no journal is enabled.
type NoopJournal struct{}

func (NoopJournal) RecordCall(ctx context.Context, rec *domain.CallRecord) error { return nil }

func (NoopJournal) Close() error { return nil }

// InMemoryJournal keeps the most recent records in memory
type InMemoryJournal struct {
	mu      sync.Mutex
	records []*domain.CallRecord
	max     int
}

// NewInMemoryJournal creates a journal holding at most max records; max <= 0 means unbounded.
func NewInMemoryJournal(max int) *InMemoryJournal {
	return &InMemoryJournal{
		records: make([]*domain.CallRecord, 0),
		max:     max,
	}
}

func (j *InMemoryJournal) RecordCall(ctx context.Context, rec *domain.CallRecord) error {
	cp := *rec
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, &cp)
	if j.max > 0 && len(j.records) > j.max {
		j.records = j.records[len(j.records)-j.max:]
	}
	return nil
}

func (j *InMemoryJournal) ListCalls(ctx context.Context, limit int) ([]*domain.CallRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := len(j.records)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]*domain.CallRecord, 0, n)
	for i := len(j.records) - 1; i >= 0 && len(result) < n; i-- {
		cp := *j.records[i]
		result = append(result, &cp)
	}
	return result, nil
}

func (j *InMemoryJournal) Close() error {
	return nil
}

var (
	_ port.CallJournal = NoopJournal{}
	_ port.CallJournal = (*InMemoryJournal)(nil)
	_ port.CallReader  = (*InMemoryJournal)(nil)
)
