package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolationCode = "23505"

const (
	constraintUsersEmail              = "uq_users_email"
	constraintRegistrationsUserEvent  = "uq_registrations_user_event"
	constraintRegistrationsTicketCode = "uq_registrations_ticket_code"
)

// uniqueViolation 回傳違反的 unique constraint 名稱；非 unique violation 時回傳空字串
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return pgErr.ConstraintName
	}
	return ""
}
