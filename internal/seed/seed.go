package seed

import (
	"context"
	"errors"
	"fmt"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

// PasswordHasher AuthService 即滿足
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type account struct {
	name     string
	email    string
	password string
	role     model.Role
}

// 預設帳號，僅供開發環境使用
var defaultAccounts = []account{
	{name: "Admin User", email: "admin@test.com", password: "admin", role: model.RoleAdmin},
	{name: "Normal User", email: "user@test.com", password: "user", role: model.RoleUser},
}

// Users 建立預設帳號；admin 已存在但角色不是 Admin 時會被提升
func Users(ctx context.Context, users repository.UserRepository, hasher PasswordHasher) error {
	log := logger.WithComponent("seed")

	for _, acc := range defaultAccounts {
		existing, err := users.FindByEmail(ctx, acc.email)
		switch {
		case err == nil:
			if acc.role == model.RoleAdmin && existing.Role != model.RoleAdmin {
				role := model.RoleAdmin
				if _, err := users.Update(ctx, existing.ID, model.UpdateUserParams{Role: &role}); err != nil {
					return fmt.Errorf("promote %s: %w", acc.email, err)
				}
				log.Info("Promoted seed user to admin", zap.String("email", acc.email))
			}
			continue
		case !errors.Is(err, apperrors.ErrUserNotFound):
			return err
		}

		hash, err := hasher.HashPassword(acc.password)
		if err != nil {
			return err
		}
		_, err = users.Create(ctx, &model.User{
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
		})
		if err != nil && !errors.Is(err, apperrors.ErrEmailExists) {
			return fmt.Errorf("seed %s: %w", acc.email, err)
		}
		log.Info("Seeded user", zap.String("email", acc.email), zap.String("role", string(acc.role)))
	}
	return nil
}
