package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"barberbook/internal/config"
	"barberbook/internal/database"
	"barberbook/internal/domain"
	"barberbook/internal/events"
	"barberbook/internal/metrics"
	"barberbook/internal/models"
	"barberbook/internal/schedule"

	"github.com/rs/zerolog"
)

var (
	// ErrMissingFields means at least one required booking field is empty
	// after trimming.
	ErrMissingFields = errors.New("all booking fields are required")

	// ErrInvalidDate means the date is not a calendar date in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
)

// BookingInput carries the raw client fields of a booking request. All six
// are required; values are trimmed before validation and storage.
type BookingInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
}

// BarberChannel is an extra operator notification channel on top of mail.
type BarberChannel interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
	BookingDeleted(ctx context.Context, booking *models.Booking) error
}

type BookingService struct {
	repo         domain.Repository
	slotCache    domain.SlotCache
	notifier     domain.Notifier
	barber       BarberChannel
	eventBus     domain.EventPublisher
	sheetsWorker domain.SyncWorker
	scheduleCfg  config.ScheduleConfig
	logger       *zerolog.Logger
}

func NewBookingService(
	repo domain.Repository,
	slotCache domain.SlotCache,
	notifier domain.Notifier,
	barber BarberChannel,
	eventBus domain.EventPublisher,
	sheetsWorker domain.SyncWorker,
	scheduleCfg config.ScheduleConfig,
	logger *zerolog.Logger,
) *BookingService {
	if scheduleCfg.Open == "" {
		scheduleCfg.Open = models.DefaultOpenTime
	}
	if scheduleCfg.Close == "" {
		scheduleCfg.Close = models.DefaultCloseTime
	}
	if scheduleCfg.SlotMinutes <= 0 {
		scheduleCfg.SlotMinutes = models.DefaultSlotMinutes
	}
	return &BookingService{
		repo:         repo,
		slotCache:    slotCache,
		notifier:     notifier,
		barber:       barber,
		eventBus:     eventBus,
		sheetsWorker: sheetsWorker,
		scheduleCfg:  scheduleCfg,
		logger:       logger,
	}
}

// Grid returns the full configured slot grid for one working day.
func (s *BookingService) Grid() []string {
	return schedule.Slots(s.scheduleCfg.Open, s.scheduleCfg.Close, s.scheduleCfg.SlotMinutes)
}

// GetAvailability splits the day's grid into free and booked times. Booked
// times come from the cache when it has the day, otherwise from the store,
// and are echoed as stored even when they fall outside the grid.
func (s *BookingService) GetAvailability(ctx context.Context, date string) (schedule.Availability, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return schedule.Availability{}, ErrInvalidDate
	}

	booked, err := s.bookedTimes(ctx, date)
	if err != nil {
		return schedule.Availability{}, err
	}

	return schedule.Resolve(s.Grid(), booked), nil
}

func (s *BookingService) bookedTimes(ctx context.Context, date string) ([]string, error) {
	if s.slotCache != nil {
		times, found, err := s.slotCache.GetBookedTimes(ctx, date)
		if err != nil {
			s.logger.Warn().Err(err).Str("date", date).Msg("slot cache read error")
		} else if found {
			return times, nil
		}
	}

	times, err := s.repo.GetBookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.slotCache != nil {
		if err := s.slotCache.SetBookedTimes(ctx, date, times); err != nil {
			s.logger.Warn().Err(err).Str("date", date).Msg("slot cache write error")
		}
	}
	return times, nil
}

// CreateBooking validates the input and takes the slot. The second return
// value reports whether the customer confirmation mail went out; a failed
// mail never undoes the booking.
func (s *BookingService) CreateBooking(ctx context.Context, input BookingInput) (*models.Booking, bool, error) {
	booking, err := s.validate(input)
	if err != nil {
		return nil, false, err
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, database.ErrSlotTaken) {
			metrics.IncSlotConflict()
		}
		return nil, false, err
	}
	metrics.IncBookingCreated()

	s.invalidateDay(ctx, booking.Date)
	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueSync(ctx, "upsert", booking, "")

	mailOk := true
	if err := s.notifier.SendConfirmation(ctx, booking); err != nil {
		mailOk = false
		metrics.IncMailFailure()
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("confirmation mail failed")
	}

	// Operator notices are fire-and-forget; the client never waits on them.
	go s.notifyBarber(booking)

	return booking, mailOk, nil
}

// ToggleStatus flips a booking between confirmed and done.
func (s *BookingService) ToggleStatus(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	next := models.StatusDone
	if booking.Status == models.StatusDone {
		next = models.StatusConfirmed
	}

	if err := s.repo.UpdateBookingStatus(ctx, id, next); err != nil {
		return nil, err
	}
	booking.Status = next

	s.invalidateDay(ctx, booking.Date)
	s.publishEvent(events.EventBookingStatusChanged, booking)
	s.enqueueSync(ctx, "update_status", booking, next)

	return booking, nil
}

// DeleteBooking removes a booking permanently and frees its slot.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	s.invalidateDay(ctx, booking.Date)
	s.publishEvent(events.EventBookingDeleted, booking)
	s.enqueueSync(ctx, "delete", booking, "")

	if s.barber != nil {
		go func() {
			if err := s.barber.BookingDeleted(context.Background(), booking); err != nil {
				s.logger.Warn().Err(err).Int64("booking_id", booking.ID).Msg("barber delete notice failed")
			}
		}()
	}

	return nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.repo.ListBookings(ctx)
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) validate(input BookingInput) (*models.Booking, error) {
	booking := &models.Booking{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   strings.TrimSpace(input.Phone),
		Date:    strings.TrimSpace(input.Date),
		Time:    strings.TrimSpace(input.Time),
		Service: strings.TrimSpace(input.Service),
		Status:  models.StatusConfirmed,
	}
	if booking.Name == "" || booking.Email == "" || booking.Phone == "" ||
		booking.Date == "" || booking.Time == "" || booking.Service == "" {
		return nil, ErrMissingFields
	}
	if _, err := schedule.ParseDate(booking.Date); err != nil {
		return nil, ErrInvalidDate
	}
	return booking, nil
}

func (s *BookingService) notifyBarber(booking *models.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.notifier.NotifyOperator(ctx, booking); err != nil {
		s.logger.Warn().Err(err).Int64("booking_id", booking.ID).Msg("barber mail failed")
	}
	if s.barber != nil {
		if err := s.barber.BookingCreated(ctx, booking); err != nil {
			s.logger.Warn().Err(err).Int64("booking_id", booking.ID).Msg("barber telegram notice failed")
		}
	}
}

func (s *BookingService) invalidateDay(ctx context.Context, date string) {
	if s.slotCache == nil {
		return
	}
	if err := s.slotCache.Invalidate(ctx, date); err != nil {
		s.logger.Warn().Err(err).Str("date", date).Msg("slot cache invalidate error")
	}
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		Name:      booking.Name,
		Email:     booking.Email,
		Phone:     booking.Phone,
		Date:      booking.Date,
		Time:      booking.Time,
		Service:   booking.Service,
		Status:    booking.Status,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueSync(ctx context.Context, taskType string, booking *models.Booking, status string) {
	if s.sheetsWorker == nil {
		return
	}
	if err := s.sheetsWorker.EnqueueTask(ctx, taskType, booking, status); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Str("task", taskType).Msg("sheets enqueue error")
	}
}
