package services

import (
	"time"

	"github.com/legendiguess/invest-trade-bot/domain"
)

type fillRecordsStorage interface {
	NewFillRecord(record *domain.FillRecord)
}

// FillJournal writes an audit row for every filled order. The journal is
// write-only for the bot; core state is never rebuilt from it.
type FillJournal struct {
	storage    fillRecordsStorage
	instrument domain.Instrument
}

func NewFillJournal(fillRecordsStorage fillRecordsStorage, instrument domain.Instrument) *FillJournal {
	return &FillJournal{storage: fillRecordsStorage, instrument: instrument}
}

func (journal *FillJournal) RecordFill(order *domain.Order) {
	journal.storage.NewFillRecord(&domain.FillRecord{
		BrokerID: order.BrokerID,
		Figi:     journal.instrument.Figi,
		Side:     order.Side.String(),
		Quantity: order.Qty,
		Price:    order.Px.String(),
		FilledAt: time.Now(),
	})
}
