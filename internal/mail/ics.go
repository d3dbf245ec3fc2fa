package mail

import (
	"fmt"
	"strings"
	"time"

	"barberbook/internal/models"

	"github.com/google/uuid"
)

const icsTimeLayout = "20060102T150405Z"

// BuildICS renders a single-event calendar invite for a booking. The event
// starts at the booked slot interpreted in the shop's local timezone and
// lasts one slot.
func BuildICS(booking *models.Booking, loc *time.Location, slotMinutes int) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	if slotMinutes <= 0 {
		slotMinutes = models.DefaultSlotMinutes
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Time, loc)
	if err != nil {
		return "", fmt.Errorf("parse booking start: %w", err)
	}
	end := start.Add(time.Duration(slotMinutes) * time.Minute)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//barberbook//booking//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uuid.NewString() + "@barberbook",
		"DTSTAMP:" + time.Now().UTC().Format(icsTimeLayout),
		"DTSTART:" + start.UTC().Format(icsTimeLayout),
		"DTEND:" + end.UTC().Format(icsTimeLayout),
		"SUMMARY:" + escapeICS("Barbershop: "+booking.Service),
		"DESCRIPTION:" + escapeICS(fmt.Sprintf("Appointment for %s, %s at %s", booking.Name, booking.Date, booking.Time)),
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n") + "\r\n", nil
}

// escapeICS quotes the characters RFC 5545 treats as special in text values.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
