package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

const (
	ScanMessageVerified    = "Ticket Verified Successfully"
	ScanMessageAlreadyUsed = "Ticket Already Used"

	// ticket code 碰撞時重新產生的上限
	maxTicketCodeAttempts = 3
)

type RegistrationService interface {
	// CreateRegistration 報名：活動存在 -> 未重複報名 -> 座位足夠 -> 產生票券並寫入
	CreateRegistration(ctx context.Context, actor model.Identity, req model.CreateRegistrationRequest) (*model.Registration, error)
	GetRegistration(ctx context.Context, actor model.Identity, id int) (*model.Registration, error)
	ListMyBookings(ctx context.Context, actor model.Identity) ([]*model.Registration, error)
	ListEventRegistrations(ctx context.Context, actor model.Identity, eventID int) ([]*model.Registration, error)
	ListAllRegistrations(ctx context.Context, actor model.Identity) ([]*model.Registration, error)
	// ScanTicket 驗票；已使用時回傳先前的票券資訊與 ErrTicketAlreadyUsed
	ScanTicket(ctx context.Context, actor model.Identity, ticketCode string) (*model.ScanResult, error)
}

type RegistrationServiceImpl struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	notification     NotificationService
	newTicketCode    func() string
}

func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	notification NotificationService,
) RegistrationService {
	return &RegistrationServiceImpl{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		notification:     notification,
		newTicketCode:    model.NewTicketCode,
	}
}

func (s *RegistrationServiceImpl) CreateRegistration(ctx context.Context, actor model.Identity, req model.CreateRegistrationRequest) (*model.Registration, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	event, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	exists, err := s.registrationRepo.ExistsByUserAndEvent(ctx, actor.UserID, event.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyRegistered
	}

	// 容量以活動 max seats 靜態判斷，不扣除其他人已訂的座位
	if quantity > event.MaxSeats {
		return nil, apperrors.ErrNotEnoughSeats
	}

	var created *model.Registration
	for attempt := 1; attempt <= maxTicketCodeAttempts; attempt++ {
		created, err = s.registrationRepo.Create(ctx, &model.Registration{
			UserID:     actor.UserID,
			EventID:    event.ID,
			TicketCode: s.newTicketCode(),
			Quantity:   quantity,
			TotalPrice: event.Price * float64(quantity),
		})
		if !errors.Is(err, apperrors.ErrDuplicateTicketCode) {
			break
		}
		logger.WithComponent("service").Warn("Ticket code collision, regenerating",
			zap.Int("event_id", event.ID),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		return nil, err
	}

	created.Event = event
	s.notify(ctx, actor, created, event)
	return created, nil
}

// notify 通知失敗只記錄，不影響報名結果
func (s *RegistrationServiceImpl) notify(ctx context.Context, actor model.Identity, registration *model.Registration, event *model.Event) {
	if s.notification == nil || actor.Email == "" {
		return
	}
	if err := s.notification.SendTicketConfirmation(ctx, actor.Email, registration.TicketCode, event.Title); err != nil {
		logger.WithComponent("service").Error("Failed to send ticket confirmation",
			zap.Int("registration_id", registration.ID),
			zap.String("ticket_code", registration.TicketCode),
			zap.Error(err),
		)
	}
}

func (s *RegistrationServiceImpl) GetRegistration(ctx context.Context, actor model.Identity, id int) (*model.Registration, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.registrationRepo.FindByID(ctx, id)
}

func (s *RegistrationServiceImpl) ListMyBookings(ctx context.Context, actor model.Identity) ([]*model.Registration, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.registrationRepo.ListByUserID(ctx, actor.UserID)
}

func (s *RegistrationServiceImpl) ListEventRegistrations(ctx context.Context, actor model.Identity, eventID int) ([]*model.Registration, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.registrationRepo.ListByEventID(ctx, eventID)
}

func (s *RegistrationServiceImpl) ListAllRegistrations(ctx context.Context, actor model.Identity) ([]*model.Registration, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	registrations, err := s.registrationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// newest first
	slices.SortStableFunc(registrations, func(a, b *model.Registration) int {
		if c := b.RegisteredAt.Compare(a.RegisteredAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return registrations, nil
}

func (s *RegistrationServiceImpl) ScanTicket(ctx context.Context, actor model.Identity, ticketCode string) (*model.ScanResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	ticketCode = strings.TrimSpace(ticketCode)
	if ticketCode == "" {
		return nil, apperrors.ErrInvalidInput
	}

	registration, err := s.registrationRepo.FindByTicketCode(ctx, ticketCode)
	if err != nil {
		return nil, err
	}

	if registration.IsScanned {
		return alreadyUsedResult(registration, registration.ScannedAt), apperrors.ErrTicketAlreadyUsed
	}

	scannedAt, err := s.registrationRepo.MarkScanned(ctx, registration.ID)
	if errors.Is(err, apperrors.ErrTicketAlreadyUsed) {
		// 併發驗票時由另一個請求先完成
		return alreadyUsedResult(registration, nil), err
	}
	if err != nil {
		return nil, err
	}

	result := scanDetails(registration)
	result.Message = ScanMessageVerified
	result.Status = model.ScanStatusUsed
	result.ScannedAt = &scannedAt
	return result, nil
}

func alreadyUsedResult(registration *model.Registration, scannedAt *time.Time) *model.ScanResult {
	result := scanDetails(registration)
	result.Message = ScanMessageAlreadyUsed
	result.ScannedAt = scannedAt
	return result
}

func scanDetails(registration *model.Registration) *model.ScanResult {
	result := &model.ScanResult{Quantity: registration.Quantity}
	if registration.User != nil {
		result.HolderName = registration.User.Name
	}
	if registration.Event != nil {
		result.EventTitle = registration.Event.Title
	}
	return result
}
