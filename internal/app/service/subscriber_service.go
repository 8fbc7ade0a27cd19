package service

import (
	"context"

	"shift-tracker/internal/domain"
)

type SubscriberService struct {
	Repo domain.SubscriberRepo
}

func NewSubscriberService(repo domain.SubscriberRepo) *SubscriberService {
	return &SubscriberService{Repo: repo}
}

func (s *SubscriberService) Subscribe(ctx context.Context, sub domain.Subscriber) error {
	return s.Repo.SaveSubscriber(ctx, sub)
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, chatID int64) error {
	return s.Repo.DeleteSubscriber(ctx, chatID)
}

func (s *SubscriberService) Subscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return s.Repo.ListSubscribers(ctx)
}
