package queue

import (
	"context"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationQueue_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewNotificationQueue(4)
	msgs, err := q.Subscribe(ctx)
	require.NoError(t, err)

	sent := &model.TicketConfirmation{Email: "a@b.c", TicketCode: "TKT-ABCDEF12", EventTitle: "Gig"}
	require.NoError(t, q.Publish(ctx, sent))

	select {
	case d := <-msgs:
		assert.Equal(t, sent, d.Data)
		d.Ack()
	case <-time.After(time.Second):
		t.Fatal("no delivery received")
	}
}

func TestNotificationQueue_PublishFull(t *testing.T) {
	ctx := context.Background()
	q := NewNotificationQueue(1)

	require.NoError(t, q.Publish(ctx, &model.TicketConfirmation{TicketCode: "TKT-00000001"}))
	err := q.Publish(ctx, &model.TicketConfirmation{TicketCode: "TKT-00000002"})
	assert.ErrorIs(t, err, apperrors.ErrQueueFull)
}

func TestNotificationQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewNotificationQueue(2)
	msgs, err := q.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, &model.TicketConfirmation{TicketCode: "TKT-00000009"}))
	first := <-msgs
	first.Nack(true)

	select {
	case again := <-msgs:
		assert.Equal(t, "TKT-00000009", again.Data.TicketCode)
	case <-time.After(time.Second):
		t.Fatal("requeued message not redelivered")
	}
}

func TestNotificationQueue_SubscribeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewNotificationQueue(1)
	msgs, err := q.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription channel not closed")
	}
}
