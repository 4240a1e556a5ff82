package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// numeric accepts a JSON number or a numeric string, so both
// {"price": 150} and {"price": "150.00"} bind.
type numeric string

func (n *numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numeric(strings.TrimSpace(s))
		return nil
	}
	*n = numeric(b)
	return nil
}

// decimal parses the value.  ok is false for empty input.
func (n numeric) decimal() (d decimal.Decimal, ok bool, err error) {
	if n == "" {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(string(n))
	return d, true, err
}
