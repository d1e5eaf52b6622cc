package domain

// PostOrderResponse is the broker's acknowledgement of a posted order. The
// broker assigns the order identifier only at this point.
type PostOrderResponse struct {
	BrokerID      string
	Direction     Side
	LotsRequested int64
	LotsExecuted  int64
	InitialPrice  Quotation
}

// OrderState is the broker's answer to a status poll.
type OrderState struct {
	BrokerID     string
	Direction    Side
	LotsExecuted int64
}

// SecurityBalance is a per-instrument balance row from the positions query.
type SecurityBalance struct {
	Figi    string `json:"figi"`
	Balance int64  `json:"balance"`
}

// PositionsResponse lists the account's balances per instrument.
type PositionsResponse struct {
	Securities []SecurityBalance `json:"securities"`
}
