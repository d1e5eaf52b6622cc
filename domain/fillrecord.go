package domain

import "time"

// FillRecord is the persisted journal row written for every filled order.
// Core state never depends on it; it exists for audit and notifications.
type FillRecord struct {
	ID       uint `gorm:"primarykey"`
	BrokerID string
	Figi     string
	Side     string
	Quantity int64
	Price    string
	FilledAt time.Time
}

// Subscriber is a telegram chat that receives fill reports.
type Subscriber struct {
	ChatID int64
}
