package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

var (
	adminIdentity = model.Identity{UserID: 1, Email: "admin@test.com", Name: "Admin", Role: model.RoleAdmin}
	anonymous     = model.Identity{}
)

// recordingNotification 記錄所有通知，err 不為 nil 時回傳失敗
type recordingNotification struct {
	mu   sync.Mutex
	sent []model.TicketConfirmation
	err  error
}

func (n *recordingNotification) SendTicketConfirmation(ctx context.Context, email, ticketCode, eventTitle string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, model.TicketConfirmation{Email: email, TicketCode: ticketCode, EventTitle: eventTitle})
	return nil
}

func (n *recordingNotification) Sent() []model.TicketConfirmation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.TicketConfirmation(nil), n.sent...)
}

// steppingClock 每次呼叫前進一秒
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func createTestUser(t *testing.T, store *memory.Store, name, email string, role model.Role) model.Identity {
	t.Helper()
	user, err := store.Users().Create(context.Background(), &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	})
	require.NoError(t, err)
	return model.Identity{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
}

func createTestEvent(t *testing.T, store *memory.Store, title string, maxSeats int, price float64) *model.Event {
	t.Helper()
	event, err := store.Events().Create(context.Background(), &model.Event{
		Title:    title,
		Date:     time.Date(2026, 12, 1, 19, 0, 0, 0, time.UTC),
		Venue:    "Main Hall",
		MaxSeats: maxSeats,
		Price:    price,
	})
	require.NoError(t, err)
	return event
}
