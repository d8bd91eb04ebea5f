package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"bnrest/internal/application/port"
	"bnrest/internal/domain"
)

type Sink struct {
	out io.Writer
}

func NewSink(out io.Writer) port.Sink { return &Sink{out: out} }

func (s *Sink) WriteResponse(status int, body []byte) error {
	if _, err := fmt.Fprintf(s.out, "status: %d\n", status); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, "%s\n", body)
	return err
}

func (s *Sink) WriteTable(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (s *Sink) WriteCalls(calls []*domain.CallRecord) error {
	rows := make([][]string, 0, len(calls))
	for _, rec := range calls {
		rows = append(rows, []string{
			time.UnixMilli(rec.TsMs).UTC().Format("2006-01-02 15:04:05"),
			rec.Method,
			rec.Path,
			strconv.FormatBool(rec.Signed),
			strconv.Itoa(rec.StatusCode),
			strconv.FormatInt(rec.DurationMs, 10),
			rec.Error,
		})
	}
	return s.WriteTable([]string{"TIME", "METHOD", "PATH", "SIGNED", "STATUS", "MS", "ERROR"}, rows)
}
