package service

import (
	"context"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/queue"
)

// NotificationService 單向通知埠：booking 成功後送出訂票確認
type NotificationService interface {
	SendTicketConfirmation(ctx context.Context, email, ticketCode, eventTitle string) error
}

type NotificationServiceImpl struct {
	queue queue.NotificationQueue
}

func NewNotificationService(queue queue.NotificationQueue) NotificationService {
	return &NotificationServiceImpl{queue: queue}
}

func (s *NotificationServiceImpl) SendTicketConfirmation(ctx context.Context, email, ticketCode, eventTitle string) error {
	return s.queue.Publish(ctx, &model.TicketConfirmation{
		Email:       email,
		TicketCode:  ticketCode,
		EventTitle:  eventTitle,
		RequestedAt: time.Now().UTC(),
	})
}
