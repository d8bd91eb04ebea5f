package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bnrest/internal/application/port"
	"bnrest/internal/domain"
)

const defaultRecordTimeout = 2 * time.Second

// CallRecorder writes call records to a journal. Failures are logged and
// never reach the API caller.
type CallRecorder struct {
	journal port.CallJournal
	timeout time.Duration
}

func NewCallRecorder(journal port.CallJournal, timeout time.Duration) *CallRecorder {
	if timeout <= 0 {
		timeout = defaultRecordTimeout
	}
	return &CallRecorder{journal: journal, timeout: timeout}
}

// Record stores rec. The write outlives cancellation of ctx so that a
// call aborted by its caller is still journaled.
func (s *CallRecorder) Record(ctx context.Context, rec *domain.CallRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.journal.RecordCall(ctx, rec); err != nil {
		log.Warn().
			Err(err).
			Str("call_id", rec.ID).
			Str("path", rec.Path).
			Msg("record call failed")
	}
}
