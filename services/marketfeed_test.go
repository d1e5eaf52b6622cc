package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/legendiguess/invest-trade-bot/services"
	"github.com/stretchr/testify/assert"
)

type bookFetcherTest struct {
	snapshot domain.OrderBookSnapshot
}

func (fetcher *bookFetcherTest) GetOrderBook(ctx context.Context, figi string, depth int) (domain.OrderBookSnapshot, error) {
	return fetcher.snapshot, nil
}

type bookStreamTest struct {
	snapshots chan domain.OrderBookSnapshot
}

func (stream *bookStreamTest) SubscribeOrderBook(ctx context.Context, figi string, depth int) (<-chan domain.OrderBookSnapshot, error) {
	return stream.snapshots, nil
}

type bookListenerTest struct {
	updates chan struct{}
}

func (listener *bookListenerTest) OnOrderBookUpdate() {
	listener.updates <- struct{}{}
}

func (listener *bookListenerTest) waitUpdate(t *testing.T) {
	select {
	case <-listener.updates:
	case <-time.After(2 * time.Second):
		t.Fatal("no order book update arrived")
	}
}

type marketFeedLoggerTest struct{}

func (marketFeedLoggerTest) Debugf(format string, args ...interface{}) {}
func (marketFeedLoggerTest) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func feedSnapshot(bidUnits int64) domain.OrderBookSnapshot {
	return domain.OrderBookSnapshot{
		Bids: []domain.PriceLevel{{Price: domain.Quotation{Units: bidUnits}, Quantity: 1}},
		Asks: []domain.PriceLevel{{Price: domain.Quotation{Units: bidUnits + 1}, Quantity: 1}},
	}
}

func TestMarketFeedRejectsBadDepth(t *testing.T) {
	assert.Panics(t, func() {
		services.NewMarketFeed(services.NewBookStore(), &bookFetcherTest{}, &bookStreamTest{}, domain.Instrument{}, 15, marketFeedLoggerTest{})
	})
}

func TestMarketFeedForwardsSnapshots(t *testing.T) {
	store := services.NewBookStore()
	fetcher := &bookFetcherTest{snapshot: feedSnapshot(100)}
	stream := &bookStreamTest{snapshots: make(chan domain.OrderBookSnapshot)}
	listener := &bookListenerTest{updates: make(chan struct{}, 4)}

	feed := services.NewMarketFeed(store, fetcher, stream, domain.Instrument{Figi: "TESTFIGI"}, 10, marketFeedLoggerTest{})
	feed.Subscribe(listener)

	go feed.Run(context.Background())

	// the initial book comes from the request gateway
	listener.waitUpdate(t)
	assert.Equal(t, "100", feed.CurrentOrderBook().BestBid().Px.String())

	// later books arrive over the stream and replace it
	stream.snapshots <- feedSnapshot(101)
	listener.waitUpdate(t)
	assert.Equal(t, "101", feed.CurrentOrderBook().BestBid().Px.String())

	close(stream.snapshots)
}
