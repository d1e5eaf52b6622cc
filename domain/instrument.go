package domain

import "github.com/shopspring/decimal"

// Instrument describes the single share the bot trades, as resolved from its
// ticker at startup. Figi is the broker's opaque instrument key.
type Instrument struct {
	Figi              string
	Ticker            string
	Lot               int64
	MinPriceIncrement decimal.Decimal
}
