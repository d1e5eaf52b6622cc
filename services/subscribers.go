package services

import (
	"github.com/legendiguess/invest-trade-bot/domain"
)

type subscribersStorage interface {
	NewSubscriber(subscriber *domain.Subscriber)
	FindSubscriber(subscriber *domain.Subscriber) (domain.Subscriber, bool)
	GetSubscribers() []domain.Subscriber
}

// SubscribersService tracks telegram chats subscribed to fill reports.
type SubscribersService struct {
	storage subscribersStorage
}

func NewSubscribersService(storage subscribersStorage) *SubscribersService {
	return &SubscribersService{storage: storage}
}

// Save subscriber, if the chat is already subscribed do nothing
func (subscribers *SubscribersService) CheckAddSubscriber(subscriber *domain.Subscriber) {
	if _, ok := subscribers.storage.FindSubscriber(subscriber); !ok {
		subscribers.storage.NewSubscriber(subscriber)
	}
}

func (subscribers *SubscribersService) GetSubscribers() []domain.Subscriber {
	return subscribers.storage.GetSubscribers()
}
