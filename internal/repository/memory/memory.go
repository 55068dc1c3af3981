// Package memory provides in-process implementations of the repository
// interfaces. They keep the same constraint semantics as the Postgres
// schema (unique email, unique (user, event), unique ticket code) and are
// safe for concurrent use.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
)

// Store holds all three tables so registration joins see a consistent view.
type Store struct {
	mu            sync.RWMutex
	users         map[int]model.User
	events        map[int]model.Event
	registrations map[int]model.Registration
	nextUserID    int
	nextEventID   int
	nextRegID     int

	// now is swappable so tests can control registered_at ordering
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int]model.User),
		events:        make(map[int]model.Event),
		registrations: make(map[int]model.Registration),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() repository.UserRepository                 { return &userRepository{s: s} }
func (s *Store) Events() repository.EventRepository               { return &eventRepository{s: s} }
func (s *Store) Registrations() repository.RegistrationRepository { return &registrationRepository{s: s} }

type userRepository struct{ s *Store }

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, apperrors.ErrEmailExists
		}
	}
	r.s.nextUserID++
	now := r.s.now()
	user.ID = r.s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) Update(ctx context.Context, id int, params model.UpdateUserParams) (*model.User, error) {
	if params.Name == nil && params.Role == nil {
		return nil, apperrors.ErrInvalidInput
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Role != nil {
		u.Role = *params.Role
	}
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return &u, nil
}

type eventRepository struct{ s *Store }

func (r *eventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextEventID++
	now := r.s.now()
	event.ID = r.s.nextEventID
	event.CreatedAt = now
	event.UpdatedAt = now
	r.s.events[event.ID] = *event
	return event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := make([]*model.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		events = append(events, &e)
	}
	slices.SortFunc(events, func(a, b *model.Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
	return events, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return &e, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.events[event.ID]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	updated := *event
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.s.now()
	r.s.events[event.ID] = updated
	return &updated, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(r.s.events, id)
	// ON DELETE CASCADE
	for regID, reg := range r.s.registrations {
		if reg.EventID == id {
			delete(r.s.registrations, regID)
		}
	}
	return nil
}

type registrationRepository struct{ s *Store }

func (r *registrationRepository) Create(ctx context.Context, registration *model.Registration) (*model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[registration.UserID]; !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if _, ok := r.s.events[registration.EventID]; !ok {
		return nil, apperrors.ErrEventNotFound
	}
	for _, reg := range r.s.registrations {
		if reg.UserID == registration.UserID && reg.EventID == registration.EventID {
			return nil, apperrors.ErrAlreadyRegistered
		}
		if reg.TicketCode == registration.TicketCode {
			return nil, apperrors.ErrDuplicateTicketCode
		}
	}

	r.s.nextRegID++
	registration.ID = r.s.nextRegID
	registration.RegisteredAt = r.s.now()
	registration.IsScanned = false
	registration.ScannedAt = nil
	stored := *registration
	stored.User, stored.Event = nil, nil
	r.s.registrations[stored.ID] = stored
	return registration, nil
}

func (r *registrationRepository) ExistsByUserAndEvent(ctx context.Context, userID, eventID int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, reg := range r.s.registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// joined must be called with the read lock held.
func (r *registrationRepository) joined(reg model.Registration) *model.Registration {
	if u, ok := r.s.users[reg.UserID]; ok {
		reg.User = &u
	}
	if e, ok := r.s.events[reg.EventID]; ok {
		reg.Event = &e
	}
	return &reg
}

func (r *registrationRepository) FindByID(ctx context.Context, id int) (*model.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	return r.joined(reg), nil
}

func (r *registrationRepository) FindByTicketCode(ctx context.Context, ticketCode string) (*model.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, reg := range r.s.registrations {
		if reg.TicketCode == ticketCode {
			return r.joined(reg), nil
		}
	}
	return nil, apperrors.ErrInvalidTicketCode
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID int) ([]*model.Registration, error) {
	return r.filter(func(reg model.Registration) bool { return reg.UserID == userID }), nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID int) ([]*model.Registration, error) {
	return r.filter(func(reg model.Registration) bool { return reg.EventID == eventID }), nil
}

func (r *registrationRepository) List(ctx context.Context) ([]*model.Registration, error) {
	return r.filter(func(model.Registration) bool { return true }), nil
}

func (r *registrationRepository) filter(keep func(model.Registration) bool) []*model.Registration {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Registration, 0)
	for _, reg := range r.s.registrations {
		if keep(reg) {
			out = append(out, r.joined(reg))
		}
	}
	slices.SortFunc(out, func(a, b *model.Registration) int {
		if c := b.RegisteredAt.Compare(a.RegisteredAt); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
	return out
}

func (r *registrationRepository) MarkScanned(ctx context.Context, id int) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reg, ok := r.s.registrations[id]
	if !ok || reg.IsScanned {
		return time.Time{}, apperrors.ErrTicketAlreadyUsed
	}
	now := r.s.now()
	reg.IsScanned = true
	reg.ScannedAt = &now
	r.s.registrations[id] = reg
	return now, nil
}

