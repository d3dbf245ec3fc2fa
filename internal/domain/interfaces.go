package domain

import (
	"context"

	"barberbook/internal/models"
)

type Repository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	GetBookedTimes(ctx context.Context, date string) ([]string, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	DeleteBooking(ctx context.Context, id int64) error
}

// SlotCache holds per-day booked-times snapshots. It is advisory only:
// creates never consult it and every write path invalidates the day key.
type SlotCache interface {
	GetBookedTimes(ctx context.Context, date string) ([]string, bool, error)
	SetBookedTimes(ctx context.Context, date string, times []string) error
	Invalidate(ctx context.Context, date string) error
}

// Notifier delivers outbound messages about a booking. Implementations must
// not panic across the boundary; errors are reported, never fatal to the
// booking itself.
type Notifier interface {
	SendConfirmation(ctx context.Context, booking *models.Booking) error
	NotifyOperator(ctx context.Context, booking *models.Booking) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type SheetsWriter interface {
	UpsertBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error
	DeleteBookingRow(ctx context.Context, bookingID int64) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, booking *models.Booking, status string) error
}
