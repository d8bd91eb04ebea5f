package factory

import (
	"context"

	"bnrest/internal/application/service"
	"bnrest/internal/domain"
	"bnrest/internal/infrastructure/exchange/binance"
)

// ============================================
// binance.CallObserver -> call journal
// ============================================

type journalObserver struct {
	recorder *service.CallRecorder
}

// NewJournalObserver adapts a CallRecorder to the client's observer hook.
func NewJournalObserver(recorder *service.CallRecorder) binance.CallObserver {
	return &journalObserver{recorder: recorder}
}

func (o *journalObserver) ObserveCall(ctx context.Context, info binance.CallInfo) {
	o.recorder.Record(ctx, CallRecordFromInfo(info))
}

// CallRecordFromInfo converts a dispatch report into a journal record.
func CallRecordFromInfo(info binance.CallInfo) *domain.CallRecord {
	rec := &domain.CallRecord{
		ID:         info.ID,
		Method:     info.Method,
		Path:       info.Path,
		Signed:     info.Signed,
		StatusCode: info.StatusCode,
		DurationMs: info.Duration.Milliseconds(),
		TsMs:       info.Time.UnixMilli(),
	}
	if info.Err != nil {
		rec.Error = info.Err.Error()
	}
	return rec
}
