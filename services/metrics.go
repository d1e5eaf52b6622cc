package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_posted_total",
		Help: "Total new orders submitted to the broker.",
	})

	ordersFilled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_filled_total",
		Help: "Total orders resolved as filled.",
	})

	ordersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total orders resolved as cancelled.",
	})

	statusPollMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_status_poll_misses_total",
		Help: "Status poll responses that matched no ledger entry.",
	})
)

func RegisterMetrics() {
	prometheus.MustRegister(ordersPosted)
	prometheus.MustRegister(ordersFilled)
	prometheus.MustRegister(ordersCancelled)
	prometheus.MustRegister(statusPollMisses)
}
