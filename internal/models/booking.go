package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:mm
	Service   string    `json:"service"`
	Status    string    `json:"status"` // confirmed, done
	CreatedAt time.Time `json:"createdAt"`
}

// Slot is the (date, time) pair a booking occupies. At most one booking may
// hold a given slot; the database enforces this with a unique index.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (b *Booking) Slot() Slot {
	return Slot{Date: b.Date, Time: b.Time}
}

// SyncTask is a queued mirror operation for the sheets worker.
type SyncTask struct {
	ID          int64
	TaskType    string
	BookingID   int64
	Payload     string
	Status      string
	RetryCount  int
	LastError   string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	NextRetryAt *time.Time
}
