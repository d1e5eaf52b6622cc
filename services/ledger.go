package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/shopspring/decimal"
)

type ledgerLogger interface {
	Errorf(format string, args ...interface{})
}

// OrderLedger is the in-memory registry of in-flight orders, keyed by side
// and kept in execution priority order (descending side*price). All state
// transitions go through the ledger; every operation that changes an order
// returns an event for the caller to propagate.
type OrderLedger struct {
	mu     sync.Mutex
	bySide map[domain.Side][]*domain.Order
	logger ledgerLogger
}

func NewOrderLedger(ledgerLogger ledgerLogger) *OrderLedger {
	return &OrderLedger{
		bySide: map[domain.Side][]*domain.Order{
			domain.SideBuy:  {},
			domain.SideSell: {},
		},
		logger: ledgerLogger,
	}
}

// CreatePending allocates a pending order for the request and inserts it in
// priority order. A second pending order while one is outstanding breaks the
// single-active-order discipline and is rejected.
func (ledger *OrderLedger) CreatePending(request domain.NewOrderRequest) (*domain.OrderEvent, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	if ledger.anyPending() {
		return nil, fmt.Errorf("pending order already outstanding, cannot post %s %d at %s", request.Side, request.Qty, request.Px)
	}

	order := &domain.Order{
		Qty:    request.Qty,
		Px:     request.Px,
		Side:   request.Side,
		Status: domain.OrderStatusPending,
	}
	ledger.insert(order)

	return &domain.OrderEvent{Type: domain.OrderEventPending, Order: order}, nil
}

// MarkCancelPending flips an active order back to pending ahead of the
// outbound cancel call.
func (ledger *OrderLedger) MarkCancelPending(order *domain.Order) *domain.OrderEvent {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	order.Status = domain.OrderStatusPending

	return &domain.OrderEvent{Type: domain.OrderEventPending, Order: order}
}

// ReconcilePostResponse matches the broker's acknowledgement back to the
// pending order by side, price and quantity (the broker id is unknown until
// now), assigns the id and resolves the order to open or filled.
func (ledger *OrderLedger) ReconcilePostResponse(response domain.PostOrderResponse) (*domain.OrderEvent, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	px := domain.QuotationToDecimal(response.InitialPrice)
	order := ledger.findBySidePxQty(response.Direction, px, response.LotsRequested)
	if order == nil {
		return nil, fmt.Errorf("post response %s %d at %s matches no pending order", response.Direction, response.LotsRequested, px)
	}

	order.BrokerID = response.BrokerID
	eventType := domain.OrderEventOpen
	order.Status = domain.OrderStatusOpen
	if order.Qty == response.LotsExecuted {
		eventType = domain.OrderEventFilled
		order.Status = domain.OrderStatusFilled
	}

	return &domain.OrderEvent{Type: eventType, Order: order}, nil
}

// ReconcileCancelResponse resolves a cancel acknowledgement. The broker's
// ack is authoritative, so the order is cancelled unconditionally.
func (ledger *OrderLedger) ReconcileCancelResponse(order *domain.Order) *domain.OrderEvent {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	order.Status = domain.OrderStatusCancelled

	return &domain.OrderEvent{Type: domain.OrderEventCancelled, Order: order}
}

// ReconcileStatusPoll feeds a status poll answer into the ledger, matching
// by side and broker id. A lookup miss is a benign race with the
// event-driven paths: it is logged, counted and dropped. Partial executions
// produce no event; only a full execution fills the order.
func (ledger *OrderLedger) ReconcileStatusPoll(state domain.OrderState) *domain.OrderEvent {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	order := ledger.findByBrokerID(state.Direction, state.BrokerID)
	if order == nil {
		statusPollMisses.Inc()
		ledger.logger.Errorf("status poll for %s order %s matches no ledger entry", state.Direction, state.BrokerID)
		return nil
	}

	if order.Qty == state.LotsExecuted {
		order.Status = domain.OrderStatusFilled
		return &domain.OrderEvent{Type: domain.OrderEventFilled, Order: order}
	}

	return nil
}

func (ledger *OrderLedger) HasAnyPending() bool {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return ledger.anyPending()
}

// ActiveOrders returns the live ledger entries, best priority first per
// side, buys before sells.
func (ledger *OrderLedger) ActiveOrders() []*domain.Order {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	var orders []*domain.Order
	for _, side := range []domain.Side{domain.SideBuy, domain.SideSell} {
		for _, order := range ledger.bySide[side] {
			if order.Status.IsActive() {
				orders = append(orders, order)
			}
		}
	}
	return orders
}

// Snapshot returns copies of all ledger entries for read-only consumers.
func (ledger *OrderLedger) Snapshot() []domain.Order {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	var orders []domain.Order
	for _, side := range []domain.Side{domain.SideBuy, domain.SideSell} {
		for _, order := range ledger.bySide[side] {
			orders = append(orders, *order)
		}
	}
	return orders
}

// PurgeTerminal drops filled and cancelled orders from both sides.
func (ledger *OrderLedger) PurgeTerminal() {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	for side, orders := range ledger.bySide {
		active := orders[:0]
		for _, order := range orders {
			if order.Status.IsActive() {
				active = append(active, order)
			}
		}
		ledger.bySide[side] = active
	}
}

func (ledger *OrderLedger) anyPending() bool {
	for _, orders := range ledger.bySide {
		for _, order := range orders {
			if order.Status == domain.OrderStatusPending {
				return true
			}
		}
	}
	return false
}

func (ledger *OrderLedger) insert(order *domain.Order) {
	orders := append(ledger.bySide[order.Side], order)
	sign := decimal.NewFromInt(order.Side.Sign())
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Px.Mul(sign).GreaterThan(orders[j].Px.Mul(sign))
	})
	ledger.bySide[order.Side] = orders
}

func (ledger *OrderLedger) findBySidePxQty(side domain.Side, px decimal.Decimal, qty int64) *domain.Order {
	for _, order := range ledger.bySide[side] {
		if order.Status == domain.OrderStatusPending && order.Px.Equal(px) && order.Qty == qty {
			return order
		}
	}
	return nil
}

func (ledger *OrderLedger) findByBrokerID(side domain.Side, brokerID string) *domain.Order {
	for _, order := range ledger.bySide[side] {
		if order.BrokerID == brokerID {
			return order
		}
	}
	return nil
}
