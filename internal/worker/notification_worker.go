package worker

import (
	"context"
	"go-gin-event-ticketing/internal/notifier"
	"go-gin-event-ticketing/internal/queue"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	// 訂閱通知隊列並投遞；回傳的 channel 在訂閱結束後關閉
	Start(ctx context.Context) (<-chan struct{}, error)
}

type NotificationWorkerImpl struct {
	sender notifier.Sender
	queue  queue.NotificationQueue
}

func NewNotificationWorker(sender notifier.Sender, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		sender: sender,
		queue:  queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) (<-chan struct{}, error) {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	log := logger.WithComponent("worker")

	go func() {
		defer close(done)
		for msg := range msgs {
			// fire-and-forget：投遞失敗只記錄，不重試
			if err := w.sender.Send(ctx, msg.Data); err != nil {
				fields := []zap.Field{zap.Error(err)}
				if msg.Data != nil {
					fields = append(fields, zap.String("ticket_code", msg.Data.TicketCode))
				}
				log.Warn("ticket confirmation delivery failed", fields...)
				msg.Nack(false)
				continue
			}
			msg.Ack()
		}
	}()
	return done, nil
}
