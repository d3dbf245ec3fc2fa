package models

const (
	StatusConfirmed = "confirmed"
	StatusDone      = "done"
)

const (
	// DefaultOpenTime and DefaultCloseTime describe the business day boundaries
	// used when the schedule section of the config is empty.
	DefaultOpenTime  = "10:00"
	DefaultCloseTime = "19:00"

	// DefaultSlotMinutes is the slot length of the availability grid.
	DefaultSlotMinutes = 30

	// DefaultTokenTTLHours is how long an admin session token stays valid.
	DefaultTokenTTLHours = 8

	// DefaultBookedTimesTTL is the lifetime of a cached per-day booked-times
	// entry, in seconds. Kept short: the cache is advisory, never the
	// authority for conflict decisions.
	DefaultBookedTimesTTL = 60

	// WorkerQueueSize is the buffer of the in-memory sync fallback queue.
	WorkerQueueSize = 128
)
