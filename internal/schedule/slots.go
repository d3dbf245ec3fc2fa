package schedule

import (
	"fmt"
	"time"

	"barberbook/internal/models"
)

// Availability is the result of resolving a day's grid against its bookings.
// Booked is returned alongside Available so clients can render taken slots
// greyed out instead of hiding them.
type Availability struct {
	Available []string `json:"available"`
	Booked    []string `json:"booked"`
}

// Slots generates the ordered slot labels for a business day: every offset t
// with start <= t < end, stepping by step minutes, formatted as zero-padded
// HH:mm. start >= end yields an empty grid, not an error.
func Slots(start, end string, step int) []string {
	from, err := toMinutes(start)
	if err != nil {
		return nil
	}
	to, err := toMinutes(end)
	if err != nil {
		return nil
	}
	if step <= 0 {
		step = models.DefaultSlotMinutes
	}

	var slots []string
	for t := from; t < to; t += step {
		slots = append(slots, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return slots
}

// DefaultGrid returns the standard business-day grid (10:00-19:00, 30 min).
func DefaultGrid() []string {
	return Slots(models.DefaultOpenTime, models.DefaultCloseTime, models.DefaultSlotMinutes)
}

// Resolve splits the grid into available and booked slots. Available keeps
// grid order; booked times are echoed back verbatim, including any entry not
// on the grid (legacy bookings created under a different schedule).
func Resolve(grid []string, booked []string) Availability {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	available := make([]string, 0, len(grid))
	for _, slot := range grid {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	if booked == nil {
		booked = []string{}
	}
	return Availability{Available: available, Booked: booked}
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func toMinutes(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", hhmm)
	}
	return h*60 + m, nil
}
