package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/legendiguess/invest-trade-bot/domain"
)

// BookStore holds the latest decoded order book for the instrument. Each
// venue snapshot replaces the stored book wholesale.
type BookStore struct {
	mu   sync.RWMutex
	book *domain.OrderBook
}

func NewBookStore() *BookStore {
	return &BookStore{}
}

// Update decodes a venue snapshot into decimal quotes sorted best-first and
// replaces the stored book. Malformed levels are an error, propagated.
func (store *BookStore) Update(snapshot domain.OrderBookSnapshot) (*domain.OrderBook, error) {
	bids, err := decodeLevels(snapshot.Bids)
	if err != nil {
		return nil, fmt.Errorf("bad bid level: %w", err)
	}
	asks, err := decodeLevels(snapshot.Asks)
	if err != nil {
		return nil, fmt.Errorf("bad ask level: %w", err)
	}

	// best bid is the highest price, best ask the lowest
	sort.SliceStable(bids, func(i, j int) bool { return bids[i].Px.GreaterThan(bids[j].Px) })
	sort.SliceStable(asks, func(i, j int) bool { return asks[i].Px.LessThan(asks[j].Px) })

	book := &domain.OrderBook{Bids: bids, Asks: asks}

	store.mu.Lock()
	store.book = book
	store.mu.Unlock()

	return book, nil
}

func (store *BookStore) Current() *domain.OrderBook {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.book
}

func decodeLevels(levels []domain.PriceLevel) ([]domain.Quote, error) {
	quotes := make([]domain.Quote, 0, len(levels))
	for _, level := range levels {
		if level.Quantity < 0 {
			return nil, fmt.Errorf("negative quantity %d", level.Quantity)
		}
		quotes = append(quotes, domain.Quote{
			Px:  domain.QuotationToDecimal(level.Price),
			Qty: level.Quantity,
		})
	}
	return quotes, nil
}
