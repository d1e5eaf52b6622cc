package domain

import "fmt"

// Side is the direction of an order. The signed value doubles as a
// price-comparison multiplier: buy orders rank by descending price, sell
// orders by ascending price, both expressed as side*price descending.
type Side int

const (
	SideBuy  = Side(1)
	SideSell = Side(-1)
)

func (side Side) Sign() int64 {
	return int64(side)
}

func (side Side) String() string {
	if side == SideBuy {
		return "buy"
	}
	return "sell"
}

func ParseSide(direction string) (Side, error) {
	switch direction {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	}
	return 0, fmt.Errorf("unknown order direction %q", direction)
}
