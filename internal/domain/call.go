package domain

// CallRecord 一次 REST 调用的记录，不包含请求参数、密钥或签名
type CallRecord struct {
	ID         string `json:"id"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Signed     bool   `json:"signed"`
	StatusCode int    `json:"status_code"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	TsMs       int64  `json:"ts_ms"`
}

// Failed reports a call that produced no HTTP response.
func (r *CallRecord) Failed() bool {
	return r.Error != ""
}
