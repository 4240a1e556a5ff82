package model

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers, matching what clients already send.
	decimal.MarshalJSONWithoutQuotes = true
}
