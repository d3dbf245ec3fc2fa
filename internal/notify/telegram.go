package notify

import (
	"context"
	"fmt"

	"barberbook/internal/config"
	"barberbook/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier pushes booking notices to the barber's chat. It is an
// optional channel on top of mail: failures are logged by the caller and
// never affect the booking.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zerolog.Logger
}

// NewTelegramNotifier returns nil without error when no bot token is
// configured; callers treat a nil notifier as "channel disabled".
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on account")

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) BookingCreated(_ context.Context, booking *models.Booking) error {
	text := fmt.Sprintf(
		"Новая запись #%d\n\n%s\n%s\n%s — %s\n%s",
		booking.ID, booking.Name, booking.Phone, booking.Date, booking.Time, booking.Service,
	)
	return n.send(text)
}

func (n *TelegramNotifier) BookingDeleted(_ context.Context, booking *models.Booking) error {
	text := fmt.Sprintf(
		"Запись #%d отменена\n\n%s, %s — %s",
		booking.ID, booking.Name, booking.Date, booking.Time,
	)
	return n.send(text)
}

func (n *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
