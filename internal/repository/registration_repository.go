package repository

import (
	"context"
	"errors"
	"fmt"
	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository interface {
	// Create 寫入報名；(user_id, event_id) 或 ticket_code 重複時分別回傳
	// ErrAlreadyRegistered / ErrDuplicateTicketCode
	Create(ctx context.Context, registration *model.Registration) (*model.Registration, error)
	ExistsByUserAndEvent(ctx context.Context, userID, eventID int) (bool, error)

	// 以下查詢皆 join 活動與使用者
	FindByID(ctx context.Context, id int) (*model.Registration, error)
	FindByTicketCode(ctx context.Context, ticketCode string) (*model.Registration, error)
	ListByUserID(ctx context.Context, userID int) ([]*model.Registration, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Registration, error)
	List(ctx context.Context) ([]*model.Registration, error)

	// MarkScanned 條件式寫入 false -> true；已使用時回傳 ErrTicketAlreadyUsed
	MarkScanned(ctx context.Context, id int) (time.Time, error)
}

type RegistrationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &RegistrationRepositoryImpl{
		pool: pool,
	}
}

const joinedRegistrationQuery = `
	SELECT r.id, r.user_id, r.event_id, r.ticket_code, r.quantity, r.total_price,
	       r.registered_at, r.is_scanned, r.scanned_at,
	       e.id, e.title, e.description, e.date, e.venue, e.max_seats, e.price,
	       e.category, e.image_url, e.created_by, e.created_at, e.updated_at,
	       u.id, u.name, u.email, u.role, u.created_at, u.updated_at
	FROM registrations r
	JOIN events e ON e.id = r.event_id
	JOIN users u ON u.id = r.user_id
`

func scanJoinedRegistration(row pgx.Row) (*model.Registration, error) {
	var (
		reg   model.Registration
		event model.Event
		user  model.User
	)
	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.TicketCode,
		&reg.Quantity,
		&reg.TotalPrice,
		&reg.RegisteredAt,
		&reg.IsScanned,
		&reg.ScannedAt,
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Venue,
		&event.MaxSeats,
		&event.Price,
		&event.Category,
		&event.ImageURL,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	reg.Event = &event
	reg.User = &user
	return &reg, nil
}

func (r *RegistrationRepositoryImpl) Create(ctx context.Context, registration *model.Registration) (*model.Registration, error) {
	query := `
		INSERT INTO registrations (user_id, event_id, ticket_code, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, event_id, ticket_code, quantity, total_price,
		          registered_at, is_scanned, scanned_at
	`

	err := r.pool.QueryRow(ctx, query,
		registration.UserID, registration.EventID, registration.TicketCode,
		registration.Quantity, registration.TotalPrice,
	).Scan(
		&registration.ID,
		&registration.UserID,
		&registration.EventID,
		&registration.TicketCode,
		&registration.Quantity,
		&registration.TotalPrice,
		&registration.RegisteredAt,
		&registration.IsScanned,
		&registration.ScannedAt,
	)

	if err != nil {
		switch uniqueViolation(err) {
		case constraintRegistrationsUserEvent:
			return nil, apperrors.ErrAlreadyRegistered
		case constraintRegistrationsTicketCode:
			return nil, apperrors.ErrDuplicateTicketCode
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return registration, nil
}

func (r *RegistrationRepositoryImpl) ExistsByUserAndEvent(ctx context.Context, userID, eventID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RegistrationRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Registration, error) {
	reg, err := scanJoinedRegistration(r.pool.QueryRow(ctx, joinedRegistrationQuery+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *RegistrationRepositoryImpl) FindByTicketCode(ctx context.Context, ticketCode string) (*model.Registration, error) {
	reg, err := scanJoinedRegistration(r.pool.QueryRow(ctx, joinedRegistrationQuery+` WHERE r.ticket_code = $1`, ticketCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidTicketCode
		}
		return nil, err
	}
	return reg, nil
}

func (r *RegistrationRepositoryImpl) ListByUserID(ctx context.Context, userID int) ([]*model.Registration, error) {
	return r.list(ctx, joinedRegistrationQuery+` WHERE r.user_id = $1 ORDER BY r.registered_at DESC, r.id DESC`, userID)
}

func (r *RegistrationRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Registration, error) {
	return r.list(ctx, joinedRegistrationQuery+` WHERE r.event_id = $1 ORDER BY r.registered_at DESC, r.id DESC`, eventID)
}

func (r *RegistrationRepositoryImpl) List(ctx context.Context) ([]*model.Registration, error) {
	return r.list(ctx, joinedRegistrationQuery+` ORDER BY r.registered_at DESC, r.id DESC`)
}

func (r *RegistrationRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]*model.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*model.Registration, 0)
	for rows.Next() {
		reg, err := scanJoinedRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}

func (r *RegistrationRepositoryImpl) MarkScanned(ctx context.Context, id int) (time.Time, error) {
	query := `
		UPDATE registrations
		SET is_scanned = TRUE, scanned_at = $1
		WHERE id = $2 AND is_scanned = FALSE
		RETURNING scanned_at
	`

	var scannedAt time.Time
	err := r.pool.QueryRow(ctx, query, time.Now().UTC(), id).Scan(&scannedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// 已被掃描（或並發掃描搶先）
			return time.Time{}, apperrors.ErrTicketAlreadyUsed
		}
		return time.Time{}, fmt.Errorf("failed to mark registration scanned: %w", err)
	}

	return scannedAt, nil
}
