package domain

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// OrderStatusPending -> {OrderStatusOpen, OrderStatusFilled, OrderStatusCancelled}
	// OrderStatusOpen -> {OrderStatusFilled, OrderStatusCancelled}
	OrderStatusPending   = OrderStatus("pending")
	OrderStatusOpen      = OrderStatus("open")
	OrderStatusFilled    = OrderStatus("filled")
	OrderStatusCancelled = OrderStatus("cancelled")
)

func (status OrderStatus) IsActive() bool {
	return status != OrderStatusFilled && status != OrderStatusCancelled
}

// Order is a single-lot limit order tracked by the ledger. Qty, Px and Side
// never change after creation; Status and BrokerID are mutated only by the
// ledger in response to broker events.
type Order struct {
	Qty      int64
	Px       decimal.Decimal
	Side     Side
	Status   OrderStatus
	BrokerID string
}

// NewOrderRequest asks the execution engine to post a new limit order.
type NewOrderRequest struct {
	Qty  int64
	Px   decimal.Decimal
	Side Side
}

// CancelOrderRequest asks the execution engine to cancel a resting order.
type CancelOrderRequest struct {
	Order *Order
}

// OrderRequest is either a NewOrderRequest or a CancelOrderRequest.
type OrderRequest interface {
	isOrderRequest()
}

func (NewOrderRequest) isOrderRequest()    {}
func (CancelOrderRequest) isOrderRequest() {}

type OrderEventType string

const (
	OrderEventPending   = OrderEventType("pending")
	OrderEventOpen      = OrderEventType("open")
	OrderEventFilled    = OrderEventType("filled")
	OrderEventCancelled = OrderEventType("cancelled")
)

// OrderEvent is handed to subscribers after every ledger state change.
type OrderEvent struct {
	Type  OrderEventType
	Order *Order
}
