package memory

import (
	"context"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) (*Store, *model.User, *model.Event) {
	t.Helper()
	ctx := context.Background()
	store := NewStore()
	user, err := store.Users().Create(ctx, &model.User{Name: "Alice", Email: "alice@test.com", Role: model.RoleUser})
	require.NoError(t, err)
	event, err := store.Events().Create(ctx, &model.Event{Title: "Go Conf", MaxSeats: 10, Price: 25})
	require.NoError(t, err)
	return store, user, event
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	store, user, _ := seedStore(t)

	_, err := store.Users().Create(ctx, &model.User{Email: "alice@test.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	_, err = store.Users().Update(ctx, user.ID, model.UpdateUserParams{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	name := "Alice B"
	updated, err := store.Users().Update(ctx, user.ID, model.UpdateUserParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, model.RoleUser, updated.Role)
}

func TestStore_Registrations(t *testing.T) {
	ctx := context.Background()

	t.Run("Constraints", func(t *testing.T) {
		store, user, event := seedStore(t)
		regs := store.Registrations()

		_, err := regs.Create(ctx, &model.Registration{UserID: user.ID, EventID: event.ID, TicketCode: "TKT-AAAA0001", Quantity: 1})
		require.NoError(t, err)

		_, err = regs.Create(ctx, &model.Registration{UserID: user.ID, EventID: event.ID, TicketCode: "TKT-AAAA0002", Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

		_, err = regs.Create(ctx, &model.Registration{UserID: user.ID, EventID: 999, TicketCode: "TKT-AAAA0003", Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("Stored copy is isolated from caller", func(t *testing.T) {
		store, user, event := seedStore(t)
		regs := store.Registrations()

		created, err := regs.Create(ctx, &model.Registration{UserID: user.ID, EventID: event.ID, TicketCode: "TKT-AAAA0001", Quantity: 1})
		require.NoError(t, err)
		created.IsScanned = true

		found, err := regs.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, found.IsScanned)
		assert.Equal(t, "Alice", found.User.Name)
		assert.Equal(t, "Go Conf", found.Event.Title)
	})

	t.Run("MarkScanned is conditional", func(t *testing.T) {
		store, user, event := seedStore(t)
		fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		store.SetClock(func() time.Time { return fixed })
		regs := store.Registrations()

		created, err := regs.Create(ctx, &model.Registration{UserID: user.ID, EventID: event.ID, TicketCode: "TKT-AAAA0001", Quantity: 1})
		require.NoError(t, err)

		scannedAt, err := regs.MarkScanned(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, fixed, scannedAt)

		_, err = regs.MarkScanned(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyUsed)
	})

	t.Run("Delete event cascades", func(t *testing.T) {
		store, user, event := seedStore(t)
		regs := store.Registrations()
		created, err := regs.Create(ctx, &model.Registration{UserID: user.ID, EventID: event.ID, TicketCode: "TKT-AAAA0001", Quantity: 1})
		require.NoError(t, err)

		require.NoError(t, store.Events().Delete(ctx, event.ID))

		_, err = regs.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
		_, err = regs.FindByTicketCode(ctx, "TKT-AAAA0001")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTicketCode)
	})
}
