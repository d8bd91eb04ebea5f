package binance

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Param is a single key=value request parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter sequence. Order is kept verbatim on the wire
// and in the signing input, and repeated keys are allowed.
type Params []Param

// Add appends key=value.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddInt appends an integer value.
func (p Params) AddInt(key string, value int64) Params {
	return p.Add(key, strconv.FormatInt(value, 10))
}

// AddBool appends "true" or "false".
func (p Params) AddBool(key string, value bool) Params {
	return p.Add(key, strconv.FormatBool(value))
}

// AddDecimal appends the exact decimal representation of value.
func (p Params) AddDecimal(key string, value decimal.Decimal) Params {
	return p.Add(key, value.String())
}

// AddNonEmpty appends key=value unless value is empty.
func (p Params) AddNonEmpty(key, value string) Params {
	if value == "" {
		return p
	}
	return p.Add(key, value)
}

// AddNonZero appends an integer unless it is zero.
func (p Params) AddNonZero(key string, value int64) Params {
	if value == 0 {
		return p
	}
	return p.AddInt(key, value)
}

// AddIntPtr appends *value when value is set.
func (p Params) AddIntPtr(key string, value *int64) Params {
	if value == nil {
		return p
	}
	return p.AddInt(key, *value)
}

// AddBoolPtr appends *value when value is set.
func (p Params) AddBoolPtr(key string, value *bool) Params {
	if value == nil {
		return p
	}
	return p.AddBool(key, *value)
}

// Get returns the first value stored under key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Encode joins the sequence as k1=v1&k2=v2 without escaping. The result is
// both the query/body string and the signing input, so values must already be
// percent-safe. An empty sequence encodes to "".
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	return b.String()
}

// clone copies p with room for the parameters the pipeline appends, so the
// caller's backing array is never written.
func (p Params) clone() Params {
	out := make(Params, len(p), len(p)+3)
	copy(out, p)
	return out
}
