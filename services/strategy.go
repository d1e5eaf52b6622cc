package services

import (
	"sync"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/shopspring/decimal"
)

type orderSubmitter interface {
	PostOrder(request domain.NewOrderRequest)
	CancelOrder(request domain.CancelOrderRequest)
}

type bookSource interface {
	CurrentOrderBook() *domain.OrderBook
}

type strategyLogger interface {
	Printf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// Strategy alternates single-lot buys and sells at the touch: buy the best
// bid when flat, sell the best ask when holding one lot, and chase the touch
// by cancelling a resting order the moment it is no longer best.
type Strategy struct {
	mu       sync.Mutex
	action   domain.Action
	ledger   *OrderLedger
	position *domain.Position
	engine   orderSubmitter
	feed     bookSource
	logger   strategyLogger
}

func NewStrategy(engine orderSubmitter, feed bookSource, ledger *OrderLedger, position *domain.Position, strategyLogger strategyLogger) *Strategy {
	qty := position.Qty()
	if qty != 0 && qty != 1 {
		strategyLogger.Panicf("starting position must be 0 or 1 lots, got %d", qty)
	}

	strategy := &Strategy{
		action:   domain.ActionBuy,
		ledger:   ledger,
		position: position,
		engine:   engine,
		feed:     feed,
		logger:   strategyLogger,
	}
	if qty == 1 {
		strategy.action = domain.ActionSell
	}

	return strategy
}

func (strategy *Strategy) Action() domain.Action {
	strategy.mu.Lock()
	defer strategy.mu.Unlock()
	return strategy.action
}

// OnOrderBookUpdate reacts to a fresh book. Nothing happens while an
// acknowledgement is outstanding; otherwise either chase a stale resting
// order or place a new one.
func (strategy *Strategy) OnOrderBookUpdate() {
	strategy.mu.Lock()
	defer strategy.mu.Unlock()

	strategy.logger.Debugf("order book update")

	if strategy.ledger.HasAnyPending() {
		return
	}

	if strategy.action == domain.ActionWait {
		strategy.possibleCancelAction()
	} else {
		strategy.buyOrSellAction()
	}
}

// OnOrderEvent recomputes the state from the position once an order reaches
// a terminal status and immediately re-enters the market.
func (strategy *Strategy) OnOrderEvent(event *domain.OrderEvent) {
	strategy.mu.Lock()
	defer strategy.mu.Unlock()

	strategy.logger.Printf("Order event %s: %s %d at %s. Position: %d lots", event.Type, event.Order.Side, event.Order.Qty, event.Order.Px, strategy.position.Qty())

	if event.Type == domain.OrderEventFilled || event.Type == domain.OrderEventCancelled {
		strategy.buyOrSellAction()
	}
}

func (strategy *Strategy) buyOrSellAction() {
	strategy.action = domain.ActionBuy
	if strategy.position.Qty() != 0 {
		strategy.action = domain.ActionSell
	}

	orderBook := strategy.feed.CurrentOrderBook()
	side := strategy.action.GetSide()
	px := orderBook.BestBid().Px
	if side == domain.SideSell {
		px = orderBook.BestAsk().Px
	}

	request := domain.NewOrderRequest{Qty: 1, Px: px, Side: side}
	strategy.logger.Printf("Create new order: %s %d at %s", request.Side, request.Qty, request.Px)
	strategy.engine.PostOrder(request)

	strategy.action = domain.ActionWait
}

func (strategy *Strategy) possibleCancelAction() {
	orders := strategy.ledger.ActiveOrders()
	if len(orders) != 1 {
		strategy.logger.Panicf("expected exactly one active order in wait state, got %d", len(orders))
	}
	order := orders[0]

	orderBook := strategy.feed.CurrentOrderBook()
	bookPx := orderBook.BestBid().Px
	if order.Side == domain.SideSell {
		bookPx = orderBook.BestAsk().Px
	}

	// order left the touch when side*px < side*bookPx
	sign := decimal.NewFromInt(order.Side.Sign())
	if order.Px.Mul(sign).LessThan(bookPx.Mul(sign)) {
		strategy.logger.Printf("Cancel order %s %d at %s: best px is %s", order.Side, order.Qty, order.Px, bookPx)
		strategy.engine.CancelOrder(domain.CancelOrderRequest{Order: order})
	}
}
