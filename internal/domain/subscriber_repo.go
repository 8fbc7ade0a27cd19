package domain

import "context"

// Subscriber is a chat that receives summaries and payment reminders.
type Subscriber struct {
	ChatID int64
	Name   string
}

type SubscriberRepo interface {
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
	SaveSubscriber(ctx context.Context, s Subscriber) error
	DeleteSubscriber(ctx context.Context, chatID int64) error
}
