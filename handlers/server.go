package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type positionSource interface {
	Qty() int64
}

type actionSource interface {
	Action() domain.Action
}

type ordersSource interface {
	Snapshot() []domain.Order
}

type orderBookSource interface {
	CurrentOrderBook() *domain.OrderBook
}

type serverLogger interface {
	Panic(args ...interface{})
}

// Server exposes the bot's live state for operators: /status with the
// position, strategy state, ledger and touch prices, and prometheus
// counters on /metrics.
type Server struct {
	position  positionSource
	strategy  actionSource
	ledger    ordersSource
	orderBook orderBookSource
	logger    serverLogger
}

func NewServer(position positionSource, strategy actionSource, ledger ordersSource, orderBook orderBookSource, serverLogger serverLogger) *Server {
	server := Server{
		position:  position,
		strategy:  strategy,
		ledger:    ledger,
		orderBook: orderBook,
		logger:    serverLogger,
	}

	go func() {
		server.logger.Panic(http.ListenAndServe(":5000", server.Routes()))
	}()

	return &server
}

func (server *Server) Routes() chi.Router {
	root := chi.NewRouter()

	root.Use(middleware.Logger)
	root.Get("/status", server.status)
	root.Handle("/metrics", promhttp.Handler())

	return root
}

type orderView struct {
	Side     string `json:"side"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
	Status   string `json:"status"`
	BrokerID string `json:"broker_id,omitempty"`
}

type statusView struct {
	Position int64       `json:"position"`
	Action   string      `json:"action"`
	Orders   []orderView `json:"orders"`
	BestBid  string      `json:"best_bid,omitempty"`
	BestAsk  string      `json:"best_ask,omitempty"`
}

func (server *Server) status(w http.ResponseWriter, r *http.Request) {
	view := statusView{
		Position: server.position.Qty(),
		Action:   string(server.strategy.Action()),
		Orders:   []orderView{},
	}

	for _, order := range server.ledger.Snapshot() {
		view.Orders = append(view.Orders, orderView{
			Side:     order.Side.String(),
			Quantity: order.Qty,
			Price:    order.Px.String(),
			Status:   string(order.Status),
			BrokerID: order.BrokerID,
		})
	}

	if orderBook := server.orderBook.CurrentOrderBook(); orderBook != nil {
		view.BestBid = orderBook.BestBid().Px.String()
		view.BestAsk = orderBook.BestAsk().Px.String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
