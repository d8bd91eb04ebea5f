package binance

import "time"

// NowMillis returns the wall-clock time in milliseconds since the Unix epoch.
// It is the default source for the timestamp parameter of signed calls.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
