package apperrors

import "errors"

var (
	// Validation
	ErrInvalidInput = errors.New("invalid input")

	// Identity
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")

	// Catalog
	ErrEventNotFound = errors.New("event not found")

	// Booking
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrNotEnoughSeats       = errors.New("not enough seats available")
	ErrDuplicateTicketCode  = errors.New("duplicate ticket code")

	// Redemption
	ErrInvalidTicketCode = errors.New("invalid ticket code")
	ErrTicketAlreadyUsed = errors.New("ticket already used")

	// Infrastructure
	ErrQueueFull           = errors.New("notification queue full")
	ErrInvalidUpload       = errors.New("invalid upload")
	ErrInternalServerError = errors.New("internal server error")
)
