package seed

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func TestUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - creates default accounts", func(t *testing.T) {
		store := memory.NewStore()

		require.NoError(t, Users(ctx, store.Users(), plainHasher{}))

		admin, err := store.Users().FindByEmail(ctx, "admin@test.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, admin.Role)
		assert.Equal(t, "hashed:admin", admin.PasswordHash)

		user, err := store.Users().FindByEmail(ctx, "user@test.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("Success - idempotent", func(t *testing.T) {
		store := memory.NewStore()

		require.NoError(t, Users(ctx, store.Users(), plainHasher{}))
		require.NoError(t, Users(ctx, store.Users(), plainHasher{}))

		_, err := store.Users().FindByID(ctx, 3)
		assert.Error(t, err)
	})

	t.Run("Success - promotes existing admin account", func(t *testing.T) {
		store := memory.NewStore()
		_, err := store.Users().Create(ctx, &model.User{Name: "Admin", Email: "admin@test.com", PasswordHash: "x", Role: model.RoleUser})
		require.NoError(t, err)

		require.NoError(t, Users(ctx, store.Users(), plainHasher{}))

		admin, err := store.Users().FindByEmail(ctx, "admin@test.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, admin.Role)
		assert.Equal(t, "x", admin.PasswordHash)
	})
}
