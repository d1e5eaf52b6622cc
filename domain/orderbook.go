package domain

import "github.com/shopspring/decimal"

// Quote is an immutable order book row.
type Quote struct {
	Px  decimal.Decimal
	Qty int64
}

// OrderBook holds the latest bid/ask ladder, best price first. A book is
// replaced wholesale on every market data update, never mutated in place.
type OrderBook struct {
	Bids []Quote
	Asks []Quote
}

func (orderBook *OrderBook) BestBid() Quote {
	return orderBook.Bids[0]
}

func (orderBook *OrderBook) BestAsk() Quote {
	return orderBook.Asks[0]
}

// PriceLevel is a single row of a venue snapshot, still in the broker's
// fixed-point representation.
type PriceLevel struct {
	Price    Quotation `json:"price"`
	Quantity int64     `json:"quantity"`
}

// OrderBookSnapshot is the raw order book as received from the broker.
type OrderBookSnapshot struct {
	Figi  string       `json:"figi"`
	Depth int          `json:"depth"`
	Bids  []PriceLevel `json:"bids"`
	Asks  []PriceLevel `json:"asks"`
}
