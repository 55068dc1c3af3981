// Package notifier delivers ticket confirmations to the ticket holder.
package notifier

import (
	"context"
	"errors"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

var ErrMissingRecipient = errors.New("confirmation has no recipient")

type Sender interface {
	Send(ctx context.Context, confirmation *model.TicketConfirmation) error
}

// LogSender writes the email and SMS bodies to the structured log instead of
// talking to an SMTP or SMS provider.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender() *LogSender {
	return &LogSender{log: logger.WithComponent("notifier")}
}

func (s *LogSender) Send(ctx context.Context, confirmation *model.TicketConfirmation) error {
	if confirmation == nil || confirmation.Email == "" {
		return ErrMissingRecipient
	}
	s.log.Info("email sent",
		zap.String("channel", "email"),
		zap.String("to", confirmation.Email),
		zap.String("subject", "Ticket Confirmation"),
		zap.String("body", "You booked "+confirmation.EventTitle+". Ticket: "+confirmation.TicketCode),
	)
	s.log.Info("sms sent",
		zap.String("channel", "sms"),
		zap.String("to", confirmation.Email),
		zap.String("body", "Your ticket for "+confirmation.EventTitle+" is "+confirmation.TicketCode),
	)
	return nil
}
