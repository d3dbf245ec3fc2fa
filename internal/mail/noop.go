package mail

import (
	"context"

	"barberbook/internal/models"

	"github.com/rs/zerolog"
)

// LogNotifier replaces the SMTP mailer when mail is not configured. It logs
// what would have been sent and reports success, so bookings created in a
// mail-less deployment still come back with mailOk=true.
type LogNotifier struct {
	logger *zerolog.Logger
}

func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendConfirmation(_ context.Context, booking *models.Booking) error {
	n.logger.Info().
		Int64("booking_id", booking.ID).
		Str("to", booking.Email).
		Msg("mail disabled, skipping confirmation")
	return nil
}

func (n *LogNotifier) NotifyOperator(_ context.Context, booking *models.Booking) error {
	n.logger.Info().
		Int64("booking_id", booking.ID).
		Msg("mail disabled, skipping barber notice")
	return nil
}
