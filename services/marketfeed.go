package services

import (
	"context"

	"github.com/legendiguess/invest-trade-bot/domain"
)

type bookFetcher interface {
	GetOrderBook(ctx context.Context, figi string, depth int) (domain.OrderBookSnapshot, error)
}

type bookStream interface {
	SubscribeOrderBook(ctx context.Context, figi string, depth int) (<-chan domain.OrderBookSnapshot, error)
}

type bookUpdateListener interface {
	OnOrderBookUpdate()
}

type marketFeedLogger interface {
	Debugf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// MarketFeed pulls an initial order book over the request gateway, then
// consumes the subscription stream, pushing every decoded snapshot through
// the book store to the strategy.
type MarketFeed struct {
	store      *BookStore
	fetcher    bookFetcher
	stream     bookStream
	strategy   bookUpdateListener
	instrument domain.Instrument
	depth      int
	logger     marketFeedLogger
}

var allowedDepths = []int{1, 10, 20, 30, 40, 50}

func NewMarketFeed(store *BookStore, fetcher bookFetcher, stream bookStream, instrument domain.Instrument, depth int, marketFeedLogger marketFeedLogger) *MarketFeed {
	allowed := false
	for _, d := range allowedDepths {
		if depth == d {
			allowed = true
		}
	}
	if !allowed {
		marketFeedLogger.Panicf("order book depth must be one of %v, got %d", allowedDepths, depth)
	}

	return &MarketFeed{
		store:      store,
		fetcher:    fetcher,
		stream:     stream,
		instrument: instrument,
		depth:      depth,
		logger:     marketFeedLogger,
	}
}

func (feed *MarketFeed) Subscribe(strategy bookUpdateListener) {
	feed.strategy = strategy
}

func (feed *MarketFeed) CurrentOrderBook() *domain.OrderBook {
	return feed.store.Current()
}

// Run blocks for the process lifetime; any feed failure is fatal.
func (feed *MarketFeed) Run(ctx context.Context) {
	snapshot, err := feed.fetcher.GetOrderBook(ctx, feed.instrument.Figi, feed.depth)
	if err != nil {
		feed.logger.Panicf("get order book failed: %v", err)
	}
	feed.apply(snapshot)

	snapshots, err := feed.stream.SubscribeOrderBook(ctx, feed.instrument.Figi, feed.depth)
	if err != nil {
		feed.logger.Panicf("subscribe order book failed: %v", err)
	}
	for snapshot := range snapshots {
		feed.apply(snapshot)
	}
}

func (feed *MarketFeed) apply(snapshot domain.OrderBookSnapshot) {
	if _, err := feed.store.Update(snapshot); err != nil {
		feed.logger.Panicf("bad order book snapshot: %v", err)
	}
	feed.logger.Debugf("order book replaced, %d bids / %d asks", len(snapshot.Bids), len(snapshot.Asks))
	feed.strategy.OnOrderBookUpdate()
}
