package services_test

import (
	"testing"
	"time"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/legendiguess/invest-trade-bot/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	queue := services.NewRequestQueue()

	first := domain.NewOrderRequest{Qty: 1, Px: decimal.NewFromInt(100), Side: domain.SideBuy}
	second := domain.NewOrderRequest{Qty: 1, Px: decimal.NewFromInt(101), Side: domain.SideSell}
	third := domain.CancelOrderRequest{Order: &domain.Order{}}

	assert.True(t, queue.Push(first))
	assert.True(t, queue.Push(second))
	assert.True(t, queue.Push(third))

	request, ok := queue.Pop()
	assert.True(t, ok)
	assert.Equal(t, first, request)

	request, ok = queue.Pop()
	assert.True(t, ok)
	assert.Equal(t, second, request)

	request, ok = queue.Pop()
	assert.True(t, ok)
	assert.Equal(t, third, request)
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	queue := services.NewRequestQueue()

	popped := make(chan domain.OrderRequest)
	go func() {
		request, _ := queue.Pop()
		popped <- request
	}()

	request := domain.NewOrderRequest{Qty: 1, Px: decimal.NewFromInt(100), Side: domain.SideBuy}
	queue.Push(request)

	select {
	case got := <-popped:
		assert.Equal(t, request, got)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake up after Push")
	}
}

func TestQueueClose(t *testing.T) {
	queue := services.NewRequestQueue()
	queue.Close()

	_, ok := queue.Pop()
	assert.False(t, ok)

	// pushes after close are rejected so the caller can log the drop
	assert.False(t, queue.Push(domain.NewOrderRequest{Qty: 1, Px: decimal.NewFromInt(100), Side: domain.SideBuy}))
	_, ok = queue.Pop()
	assert.False(t, ok)
}
