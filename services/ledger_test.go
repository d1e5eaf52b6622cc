package services_test

import (
	"fmt"
	"testing"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/legendiguess/invest-trade-bot/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type ledgerLoggerTest struct {
	errors int
}

func (logger *ledgerLoggerTest) Errorf(format string, args ...interface{}) {
	logger.errors++
}

func newOrderRequest(side domain.Side, px string) domain.NewOrderRequest {
	return domain.NewOrderRequest{Qty: 1, Px: decimal.RequireFromString(px), Side: side}
}

func postResponse(side domain.Side, px string, brokerID string, executed int64) domain.PostOrderResponse {
	quotation, _ := domain.DecimalToQuotation(decimal.RequireFromString(px))
	return domain.PostOrderResponse{
		BrokerID:      brokerID,
		Direction:     side,
		LotsRequested: 1,
		LotsExecuted:  executed,
		InitialPrice:  quotation,
	}
}

// openOrder posts and acknowledges an order so the ledger holds it as open.
func openOrder(t *testing.T, ledger *services.OrderLedger, side domain.Side, px string, brokerID string) *domain.Order {
	event, err := ledger.CreatePending(newOrderRequest(side, px))
	assert.Nil(t, err)
	assert.Equal(t, domain.OrderEventPending, event.Type)

	event, err = ledger.ReconcilePostResponse(postResponse(side, px, brokerID, 0))
	assert.Nil(t, err)
	assert.Equal(t, domain.OrderEventOpen, event.Type)

	return event.Order
}

func TestSecondPendingRejected(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	_, err := ledger.CreatePending(newOrderRequest(domain.SideBuy, "100"))
	assert.Nil(t, err)

	_, err = ledger.CreatePending(newOrderRequest(domain.SideSell, "101"))
	assert.NotNil(t, err)
}

func TestOrdersKeptInPriorityOrder(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	openOrder(t, ledger, domain.SideBuy, "100", "b1")
	openOrder(t, ledger, domain.SideBuy, "102", "b2")
	openOrder(t, ledger, domain.SideBuy, "101", "b3")
	openOrder(t, ledger, domain.SideSell, "101", "s1")
	openOrder(t, ledger, domain.SideSell, "99", "s2")
	openOrder(t, ledger, domain.SideSell, "100", "s3")

	var prices []string
	for _, order := range ledger.ActiveOrders() {
		prices = append(prices, order.Px.String())
	}

	// buys by descending price, sells by ascending price
	assert.Equal(t, []string{"102", "101", "100", "99", "100", "101"}, prices)
}

func TestReconcilePostResponseFilled(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	_, err := ledger.CreatePending(newOrderRequest(domain.SideBuy, "100.5"))
	assert.Nil(t, err)

	event, err := ledger.ReconcilePostResponse(postResponse(domain.SideBuy, "100.5", "b1", 1))
	assert.Nil(t, err)
	assert.Equal(t, domain.OrderEventFilled, event.Type)
	assert.Equal(t, domain.OrderStatusFilled, event.Order.Status)
	assert.Equal(t, "b1", event.Order.BrokerID)
}

func TestReconcilePostResponseNoMatch(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	_, err := ledger.ReconcilePostResponse(postResponse(domain.SideBuy, "100", "b1", 0))
	assert.NotNil(t, err)
}

func TestCancelFlow(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	order := openOrder(t, ledger, domain.SideBuy, "100", "b1")

	event := ledger.MarkCancelPending(order)
	assert.Equal(t, domain.OrderEventPending, event.Type)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, ledger.HasAnyPending())

	event = ledger.ReconcileCancelResponse(order)
	assert.Equal(t, domain.OrderEventCancelled, event.Type)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func TestReconcileStatusPoll(t *testing.T) {
	logger := &ledgerLoggerTest{}
	ledger := services.NewOrderLedger(logger)

	order := openOrder(t, ledger, domain.SideSell, "101", "s1")

	// partial executions are invisible
	event := ledger.ReconcileStatusPoll(domain.OrderState{BrokerID: "s1", Direction: domain.SideSell, LotsExecuted: 0})
	assert.Nil(t, event)
	assert.Equal(t, domain.OrderStatusOpen, order.Status)

	// unknown order is a tolerated race, logged and dropped
	event = ledger.ReconcileStatusPoll(domain.OrderState{BrokerID: "gone", Direction: domain.SideSell, LotsExecuted: 1})
	assert.Nil(t, event)
	assert.Equal(t, 1, logger.errors)

	event = ledger.ReconcileStatusPoll(domain.OrderState{BrokerID: "s1", Direction: domain.SideSell, LotsExecuted: 1})
	assert.Equal(t, domain.OrderEventFilled, event.Type)
	assert.Equal(t, domain.OrderStatusFilled, order.Status)
}

// The status poller reads Snapshot copies while workers assign broker ids
// and flip statuses under the ledger mutex. A copy must be internally
// consistent: an open order always carries its broker id.
func TestSnapshotIsolatedFromReconciliation(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			event, err := ledger.CreatePending(newOrderRequest(domain.SideBuy, "100"))
			if err != nil {
				continue
			}
			if _, err := ledger.ReconcilePostResponse(postResponse(domain.SideBuy, "100", fmt.Sprintf("b%d", i), 0)); err != nil {
				continue
			}
			ledger.ReconcileCancelResponse(event.Order)
			ledger.PurgeTerminal()
		}
	}()

	for {
		for _, order := range ledger.Snapshot() {
			if order.Status == domain.OrderStatusOpen && order.BrokerID == "" {
				t.Fatal("snapshot holds an open order without a broker id")
			}
		}
		select {
		case <-done:
			assert.Equal(t, 0, len(ledger.ActiveOrders()))
			return
		default:
		}
	}
}

func TestPurgeTerminalIdempotent(t *testing.T) {
	ledger := services.NewOrderLedger(&ledgerLoggerTest{})

	keep := openOrder(t, ledger, domain.SideBuy, "100", "b1")
	drop := openOrder(t, ledger, domain.SideSell, "101", "s1")
	ledger.ReconcileCancelResponse(drop)

	ledger.PurgeTerminal()
	assert.Equal(t, []*domain.Order{keep}, ledger.ActiveOrders())

	ledger.PurgeTerminal()
	assert.Equal(t, []*domain.Order{keep}, ledger.ActiveOrders())
}
