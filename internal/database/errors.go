package database

import "errors"

var (
	// ErrSlotTaken is returned when an insert collides with the unique
	// (date, time) index. It is an expected outcome under concurrent
	// booking, not a server fault.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrNotFound is returned when an id resolves to no booking.
	ErrNotFound = errors.New("booking not found")
)
