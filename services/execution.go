package services

import (
	"context"
	"sync"
	"time"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/shopspring/decimal"
)

const (
	orderWorkers      = 5
	orderPollInterval = 500 * time.Millisecond
)

type orderGateway interface {
	PostOrder(ctx context.Context, figi string, qty int64, px decimal.Decimal, side domain.Side, accountID string) (domain.PostOrderResponse, error)
	CancelOrder(ctx context.Context, accountID string, brokerID string) error
	GetOrderState(ctx context.Context, accountID string, brokerID string) (domain.OrderState, error)
}

type positionsGateway interface {
	GetPositions(ctx context.Context, accountID string) (domain.PositionsResponse, error)
}

type orderEventListener interface {
	OnOrderEvent(event *domain.OrderEvent)
}

type fillJournalService interface {
	RecordFill(order *domain.Order)
}

type subscribersSource interface {
	GetSubscribers() []domain.Subscriber
}

type fillNotifier interface {
	SendFillReport(chatID int64, order *domain.Order)
}

type executionLogger interface {
	Printf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// ExecutionEngine drains the submission queue with a fixed pool of workers
// and polls resting orders for fills. Each request runs pending transition,
// broker call, reconciliation; every resulting event goes through a single
// notification path that updates the position, journals fills and hands
// control to the strategy. Broker failures are fatal: money movement is
// never retried blindly.
type ExecutionEngine struct {
	mu         sync.Mutex
	queue      *RequestQueue
	ledger     *OrderLedger
	position   *domain.Position
	gateway    orderGateway
	journal    fillJournalService
	subscriber subscribersSource
	notifier   fillNotifier
	strategy   orderEventListener
	instrument domain.Instrument
	accountID  string
	logger     executionLogger
}

// InitialPosition rebuilds the starting position, in lots, from the
// brokerage's live positions query.
func InitialPosition(ctx context.Context, gateway positionsGateway, accountID string, instrument domain.Instrument) (int64, error) {
	response, err := gateway.GetPositions(ctx, accountID)
	if err != nil {
		return 0, err
	}

	for _, security := range response.Securities {
		if security.Figi == instrument.Figi {
			return security.Balance / instrument.Lot, nil
		}
	}
	return 0, nil
}

func NewExecutionEngine(gateway orderGateway, ledger *OrderLedger, position *domain.Position, journal fillJournalService, subscriber subscribersSource, notifier fillNotifier, instrument domain.Instrument, accountID string, executionLogger executionLogger) *ExecutionEngine {
	return &ExecutionEngine{
		queue:      NewRequestQueue(),
		ledger:     ledger,
		position:   position,
		gateway:    gateway,
		journal:    journal,
		subscriber: subscriber,
		notifier:   notifier,
		instrument: instrument,
		accountID:  accountID,
		logger:     executionLogger,
	}
}

// Subscribe wires the strategy in. Must be called before Run.
func (engine *ExecutionEngine) Subscribe(strategy orderEventListener) {
	engine.strategy = strategy
}

// Run starts the worker pool and blocks in the status poller until the
// context is cancelled, which also closes the submission queue.
func (engine *ExecutionEngine) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		engine.queue.Close()
	}()

	for i := 0; i < orderWorkers; i++ {
		go engine.requestWorker(ctx)
	}
	engine.monitorOrders(ctx)
}

func (engine *ExecutionEngine) PostOrder(request domain.NewOrderRequest) {
	engine.logger.Printf("Post order: %s %d at %s", request.Side, request.Qty, request.Px)
	if !engine.queue.Push(request) {
		engine.logger.Debugf("queue closed, dropped post request %s %d at %s", request.Side, request.Qty, request.Px)
	}
}

func (engine *ExecutionEngine) CancelOrder(request domain.CancelOrderRequest) {
	engine.logger.Printf("Cancel order: %s %d at %s", request.Order.Side, request.Order.Qty, request.Order.Px)
	if !engine.queue.Push(request) {
		engine.logger.Debugf("queue closed, dropped cancel request for order %s", request.Order.BrokerID)
	}
}

func (engine *ExecutionEngine) requestWorker(ctx context.Context) {
	for {
		request, ok := engine.queue.Pop()
		if !ok {
			return
		}

		switch request := request.(type) {
		case domain.NewOrderRequest:
			engine.processPost(ctx, request)
		case domain.CancelOrderRequest:
			engine.processCancel(ctx, request)
		}
	}
}

func (engine *ExecutionEngine) processPost(ctx context.Context, request domain.NewOrderRequest) {
	event, err := engine.ledger.CreatePending(request)
	if err != nil {
		engine.logger.Panicf("%v", err)
	}
	engine.notify(event)

	response, err := engine.gateway.PostOrder(ctx, engine.instrument.Figi, request.Qty, request.Px, request.Side, engine.accountID)
	if err != nil {
		engine.logger.Panicf("post order failed: %v", err)
	}
	ordersPosted.Inc()

	event, err = engine.ledger.ReconcilePostResponse(response)
	if err != nil {
		engine.logger.Panicf("%v", err)
	}
	engine.notify(event)
}

func (engine *ExecutionEngine) processCancel(ctx context.Context, request domain.CancelOrderRequest) {
	engine.notify(engine.ledger.MarkCancelPending(request.Order))

	if err := engine.gateway.CancelOrder(ctx, engine.accountID, request.Order.BrokerID); err != nil {
		engine.logger.Panicf("cancel order %s failed: %v", request.Order.BrokerID, err)
	}

	engine.notify(engine.ledger.ReconcileCancelResponse(request.Order))
}

// monitorOrders re-queries every resting order with an assigned broker id on
// a fixed interval and feeds the answers through the same notification path
// as the event-driven reconciliations. It walks value copies of the ledger
// entries; only ReconcileStatusPoll touches the live orders, under the
// ledger mutex.
func (engine *ExecutionEngine) monitorOrders(ctx context.Context) {
	ticker := time.NewTicker(orderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, order := range engine.ledger.Snapshot() {
			if !order.Status.IsActive() || order.BrokerID == "" {
				continue
			}

			state, err := engine.gateway.GetOrderState(ctx, engine.accountID, order.BrokerID)
			if err != nil {
				engine.logger.Panicf("get order state %s failed: %v", order.BrokerID, err)
			}
			engine.logger.Debugf("order %s: %d lots executed", state.BrokerID, state.LotsExecuted)

			engine.notify(engine.ledger.ReconcileStatusPoll(state))
		}
	}
}

// notify serializes reconciliation fan-out: position update for fills,
// journal and telegram reports, strategy callback, then a purge of terminal
// orders.
func (engine *ExecutionEngine) notify(event *domain.OrderEvent) {
	if event == nil {
		return
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	if event.Type == domain.OrderEventFilled {
		engine.position.ApplyFill(event.Order)
		ordersFilled.Inc()
		engine.journal.RecordFill(event.Order)
		for _, subscriber := range engine.subscriber.GetSubscribers() {
			engine.notifier.SendFillReport(subscriber.ChatID, event.Order)
		}
	}
	if event.Type == domain.OrderEventCancelled {
		ordersCancelled.Inc()
	}

	engine.strategy.OnOrderEvent(event)
	engine.ledger.PurgeTerminal()
}
