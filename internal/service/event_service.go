package service

import (
	"context"
	"errors"
	"strings"

	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	// GetByID 先讀 Redis 快取，miss 時回源資料庫
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, actor model.Identity, event *model.Event) (*model.Event, error)
	// Update 整筆覆寫，event.ID 必須與 id 相同
	Update(ctx context.Context, actor model.Identity, id int, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, actor model.Identity, id int) error
}

type EventServiceImpl struct {
	repo  repository.EventRepository
	cache cache.EventCache
}

// NewEventService cache 可為 nil，此時全部直接讀資料庫
func NewEventService(repo repository.EventRepository, eventCache cache.EventCache) EventService {
	return &EventServiceImpl{repo: repo, cache: eventCache}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	if s.cache != nil {
		event, err := s.cache.Get(ctx, id)
		if err == nil {
			return event, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.WithComponent("service").Warn("Event cache read failed",
				zap.Int("event_id", id),
				zap.Error(err),
			)
		}
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, event); err != nil {
			logger.WithComponent("service").Warn("Event cache write failed",
				zap.Int("event_id", id),
				zap.Error(err),
			)
		}
	}
	return event, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, actor model.Identity, event *model.Event) (*model.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	event.ID = 0
	event.CreatedBy = actor.UserID
	event.ApplyDefaults()
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) Update(ctx context.Context, actor model.Identity, id int, event *model.Event) (*model.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if event == nil || event.ID != id {
		return nil, apperrors.ErrInvalidInput
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.CreatedBy = existing.CreatedBy
	event.ApplyDefaults()
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, actor model.Identity, id int) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *EventServiceImpl) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.WithComponent("service").Warn("Event cache invalidate failed",
			zap.Int("event_id", id),
			zap.Error(err),
		)
	}
}

func validateEvent(event *model.Event) error {
	if event == nil || strings.TrimSpace(event.Title) == "" {
		return apperrors.ErrInvalidInput
	}
	if event.MaxSeats < 0 || event.Price < 0 {
		return apperrors.ErrInvalidInput
	}
	return nil
}

// requireAdmin 未登入回 ErrUnauthorized，非 Admin 回 ErrForbidden
func requireAdmin(actor model.Identity) error {
	if !actor.IsAuthenticated() {
		return apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

func requireAuthenticated(actor model.Identity) error {
	if !actor.IsAuthenticated() {
		return apperrors.ErrUnauthorized
	}
	return nil
}
