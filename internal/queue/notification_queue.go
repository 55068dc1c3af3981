package queue

import (
	"context"
	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
)

type Delivery struct {
	Data *model.TicketConfirmation
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	// 發送通知到隊列
	Publish(ctx context.Context, confirmation *model.TicketConfirmation) error
	// 訂閱通知隊列
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type NotificationQueueImpl struct {
	// 使用 Go channel 作為程序內隊列
	ch chan *model.TicketConfirmation
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &NotificationQueueImpl{
		ch: make(chan *model.TicketConfirmation, bufferSize),
	}
}

// Publish never blocks the booking request; a full buffer is reported as ErrQueueFull.
func (q *NotificationQueueImpl) Publish(ctx context.Context, confirmation *model.TicketConfirmation) error {
	select {
	case q.ch <- confirmation:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return apperrors.ErrQueueFull
	}
}

func (q *NotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case confirmation, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: confirmation,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							select {
							case q.ch <- confirmation:
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
