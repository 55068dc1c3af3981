//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	repo := repository.NewUserRepository(testDB)
	ctx := context.Background()

	t.Run("Create and find", func(t *testing.T) {
		setupTestWithTruncate(t)

		created := createTestUser(t, "Alice", "alice@test.com")
		assert.NotZero(t, created.ID)
		assert.NotZero(t, created.CreatedAt)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@test.com", byID.Email)
		assert.Equal(t, "hash", byID.PasswordHash)

		byEmail, err := repo.FindByEmail(ctx, "alice@test.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
	})

	t.Run("Failed - ErrEmailExists", func(t *testing.T) {
		setupTestWithTruncate(t)
		createTestUser(t, "Alice", "alice@test.com")

		_, err := repo.Create(ctx, &model.User{Name: "Other", Email: "alice@test.com", PasswordHash: "x", Role: model.RoleUser})

		assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	})

	t.Run("Update role", func(t *testing.T) {
		setupTestWithTruncate(t)
		created := createTestUser(t, "Alice", "alice@test.com")
		role := model.RoleAdmin

		updated, err := repo.Update(ctx, created.ID, model.UpdateUserParams{Role: &role})

		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, updated.Role)
		assert.Equal(t, "Alice", updated.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@test.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestEventRepository(t *testing.T) {
	repo := repository.NewEventRepository(testDB)
	ctx := context.Background()

	t.Run("CRUD", func(t *testing.T) {
		setupTestWithTruncate(t)
		admin := createTestUser(t, "Admin", "admin@test.com")
		created := createTestEvent(t, "Go Conf", 10, 25.5, admin.ID)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go Conf", found.Title)
		assert.InDelta(t, 25.5, found.Price, 0.001)
		assert.Equal(t, model.DefaultEventCategory, found.Category)

		found.Title = "Go Conf 2"
		found.MaxSeats = 50
		updated, err := repo.Update(ctx, found)
		require.NoError(t, err)
		assert.Equal(t, "Go Conf 2", updated.Title)
		assert.Equal(t, 50, updated.MaxSeats)

		events, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)

		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.Update(ctx, &model.Event{ID: 404, Title: "x"})
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, 404), apperrors.ErrEventNotFound)
	})
}

func TestRegistrationRepository(t *testing.T) {
	repo := repository.NewRegistrationRepository(testDB)
	ctx := context.Background()

	newRegistration := func(userID, eventID int, code string) *model.Registration {
		return &model.Registration{UserID: userID, EventID: eventID, TicketCode: code, Quantity: 2, TotalPrice: 50}
	}

	t.Run("Create and joined lookups", func(t *testing.T) {
		setupTestWithTruncate(t)
		user := createTestUser(t, "Alice", "alice@test.com")
		event := createTestEvent(t, "Go Conf", 10, 25, user.ID)

		created, err := repo.Create(ctx, newRegistration(user.ID, event.ID, "TKT-AAAA0001"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.NotZero(t, created.RegisteredAt)
		assert.False(t, created.IsScanned)

		exists, err := repo.ExistsByUserAndEvent(ctx, user.ID, event.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		found, err := repo.FindByTicketCode(ctx, "TKT-AAAA0001")
		require.NoError(t, err)
		require.NotNil(t, found.User)
		require.NotNil(t, found.Event)
		assert.Equal(t, "Alice", found.User.Name)
		assert.Equal(t, "Go Conf", found.Event.Title)
		assert.Empty(t, found.User.PasswordHash)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "TKT-AAAA0001", byID.TicketCode)
	})

	t.Run("Failed - unique constraints", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "Alice", "alice@test.com")
		bob := createTestUser(t, "Bob", "bob@test.com")
		event := createTestEvent(t, "Go Conf", 10, 25, alice.ID)

		_, err := repo.Create(ctx, newRegistration(alice.ID, event.ID, "TKT-AAAA0001"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newRegistration(alice.ID, event.ID, "TKT-AAAA0002"))
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

		_, err = repo.Create(ctx, newRegistration(bob.ID, event.ID, "TKT-AAAA0001"))
		assert.ErrorIs(t, err, apperrors.ErrDuplicateTicketCode)
	})

	t.Run("Concurrent create for same user and event", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "Alice", "alice@test.com")
		event := createTestEvent(t, "Go Conf", 10, 25, alice.ID)

		const attempts = 20
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Create(ctx, newRegistration(alice.ID, event.ID, model.NewTicketCode()))
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
	})

	t.Run("MarkScanned once", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "Alice", "alice@test.com")
		event := createTestEvent(t, "Go Conf", 10, 25, alice.ID)
		created, err := repo.Create(ctx, newRegistration(alice.ID, event.ID, "TKT-AAAA0001"))
		require.NoError(t, err)

		scannedAt, err := repo.MarkScanned(ctx, created.ID)
		require.NoError(t, err)
		assert.NotZero(t, scannedAt)

		_, err = repo.MarkScanned(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrTicketAlreadyUsed)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, found.IsScanned)
		require.NotNil(t, found.ScannedAt)
	})

	t.Run("Lists newest first", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "Alice", "alice@test.com")
		bob := createTestUser(t, "Bob", "bob@test.com")
		first := createTestEvent(t, "First", 10, 25, alice.ID)
		second := createTestEvent(t, "Second", 10, 25, alice.ID)

		r1, err := repo.Create(ctx, newRegistration(alice.ID, first.ID, "TKT-AAAA0001"))
		require.NoError(t, err)
		r2, err := repo.Create(ctx, newRegistration(bob.ID, first.ID, "TKT-AAAA0002"))
		require.NoError(t, err)
		r3, err := repo.Create(ctx, newRegistration(alice.ID, second.ID, "TKT-AAAA0003"))
		require.NoError(t, err)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int{r3.ID, r2.ID, r1.ID}, []int{all[0].ID, all[1].ID, all[2].ID})

		mine, err := repo.ListByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		byEvent, err := repo.ListByEventID(ctx, first.ID)
		require.NoError(t, err)
		assert.Len(t, byEvent, 2)
	})

	t.Run("Delete event cascades registrations", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "Alice", "alice@test.com")
		event := createTestEvent(t, "Go Conf", 10, 25, alice.ID)
		created, err := repo.Create(ctx, newRegistration(alice.ID, event.ID, "TKT-AAAA0001"))
		require.NoError(t, err)

		require.NoError(t, repository.NewEventRepository(testDB).Delete(ctx, event.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.FindByTicketCode(ctx, "TKT-NOPE0000")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTicketCode)

		_, err = repo.FindByID(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
	})
}
