package domain

import "sync"

// Position is the account's holding in the traded instrument, in lots. It is
// mutated only when an order fills; the mutex keeps reads from the strategy
// and the status endpoint consistent with writes from the engine workers.
type Position struct {
	mu  sync.Mutex
	qty int64
}

func NewPosition(qty int64) *Position {
	return &Position{qty: qty}
}

func (position *Position) Qty() int64 {
	position.mu.Lock()
	defer position.mu.Unlock()
	return position.qty
}

func (position *Position) ApplyFill(order *Order) {
	position.mu.Lock()
	defer position.mu.Unlock()
	position.qty += order.Qty * order.Side.Sign()
}
