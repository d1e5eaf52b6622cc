package services

import (
	"sync"

	"github.com/legendiguess/invest-trade-bot/domain"
)

// RequestQueue is the engine's unbounded FIFO submission queue. Push never
// blocks the producer and reports whether the request was accepted; Pop
// blocks until a request or Close arrives.
type RequestQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	requests []domain.OrderRequest
	closed   bool
}

func NewRequestQueue() *RequestQueue {
	queue := &RequestQueue{}
	queue.notEmpty = sync.NewCond(&queue.mu)
	return queue
}

func (queue *RequestQueue) Push(request domain.OrderRequest) bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		return false
	}
	queue.requests = append(queue.requests, request)
	queue.notEmpty.Signal()
	return true
}

func (queue *RequestQueue) Pop() (domain.OrderRequest, bool) {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	for len(queue.requests) == 0 && !queue.closed {
		queue.notEmpty.Wait()
	}
	if len(queue.requests) == 0 {
		return nil, false
	}

	request := queue.requests[0]
	queue.requests = queue.requests[1:]
	return request, true
}

func (queue *RequestQueue) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	queue.closed = true
	queue.notEmpty.Broadcast()
}
