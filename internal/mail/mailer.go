package mail

import (
	"context"
	"fmt"
	"io"
	"time"

	"barberbook/internal/config"
	"barberbook/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends booking mail over SMTP. One dialer is shared; gomail opens a
// connection per send, which is fine at barbershop volume.
type Mailer struct {
	cfg         config.SMTPConfig
	dialer      *gomail.Dialer
	logger      *zerolog.Logger
	location    *time.Location
	slotMinutes int
}

func NewMailer(cfg config.SMTPConfig, schedule config.ScheduleConfig, logger *zerolog.Logger) *Mailer {
	return &Mailer{
		cfg:         cfg,
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		logger:      logger,
		location:    time.Local,
		slotMinutes: schedule.SlotMinutes,
	}
}

// SendConfirmation mails the customer a confirmation with a calendar invite
// attached. The caller decides what a failure means; this method just
// reports it.
func (m *Mailer) SendConfirmation(ctx context.Context, booking *models.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", booking.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Booking confirmed: %s on %s at %s", booking.Service, booking.Date, booking.Time))
	msg.SetBody("text/plain", confirmationText(booking))
	msg.AddAlternative("text/html", confirmationHTML(booking))

	ics, err := BuildICS(booking, m.location, m.slotMinutes)
	if err != nil {
		m.logger.Warn().Err(err).Int64("booking_id", booking.ID).Msg("failed to build calendar invite, sending without attachment")
	} else {
		msg.Attach("booking.ics",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write([]byte(ics))
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"text/calendar; method=PUBLISH; charset=UTF-8"}}),
		)
	}

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", booking.Email, err)
	}

	m.logger.Info().
		Int64("booking_id", booking.ID).
		Str("to", booking.Email).
		Msg("confirmation mail sent")
	return nil
}

// NotifyOperator mails the barber about a new booking. A no-op when no
// barber address is configured.
func (m *Mailer) NotifyOperator(ctx context.Context, booking *models.Booking) error {
	if m.cfg.BarberEmail == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", m.cfg.BarberEmail)
	msg.SetHeader("Subject", fmt.Sprintf("New booking: %s, %s %s", booking.Name, booking.Date, booking.Time))
	msg.SetBody("text/plain", operatorText(booking))

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("notify barber: %w", err)
	}
	return nil
}

// send runs the blocking SMTP dial on its own goroutine so the context
// deadline is honored.
func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

func confirmationText(b *models.Booking) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\nService: %s\nDate: %s\nTime: %s\n\nSee you soon!\n",
		b.Name, b.Service, b.Date, b.Time,
	)
}

func confirmationHTML(b *models.Booking) string {
	return fmt.Sprintf(
		`<p>Hi %s,</p><p>Your booking is confirmed.</p><ul><li><b>Service:</b> %s</li><li><b>Date:</b> %s</li><li><b>Time:</b> %s</li></ul><p>See you soon!</p>`,
		b.Name, b.Service, b.Date, b.Time,
	)
}

func operatorText(b *models.Booking) string {
	return fmt.Sprintf(
		"New booking #%d\n\nName: %s\nPhone: %s\nEmail: %s\nService: %s\nDate: %s\nTime: %s\n",
		b.ID, b.Name, b.Phone, b.Email, b.Service, b.Date, b.Time,
	)
}
