package port

import "bnrest/internal/domain"

type Sink interface {
	// Raw call outcome: status line, then the body verbatim
	WriteResponse(status int, body []byte) error
	// Aligned table with a header row
	WriteTable(header []string, rows [][]string) error
	// Journal listing, newest first
	WriteCalls(calls []*domain.CallRecord) error
}
