package mail

import (
	"strings"
	"testing"
	"time"

	"barberbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() *models.Booking {
	return &models.Booking{
		ID:      7,
		Name:    "Ivan",
		Email:   "ivan@example.com",
		Phone:   "+10000000000",
		Date:    "2026-09-15",
		Time:    "14:30",
		Service: "Haircut",
		Status:  models.StatusConfirmed,
	}
}

func TestBuildICS(t *testing.T) {
	ics, err := BuildICS(testBooking(), time.UTC, 30)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	assert.Contains(t, ics, "DTSTART:20260915T143000Z")
	assert.Contains(t, ics, "DTEND:20260915T150000Z")
	assert.Contains(t, ics, "SUMMARY:Barbershop: Haircut")
	assert.Contains(t, ics, "STATUS:CONFIRMED")
}

func TestBuildICSTimezoneConversion(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)

	ics, err := BuildICS(testBooking(), loc, 30)
	require.NoError(t, err)

	// 14:30 at UTC+3 is 11:30 UTC.
	assert.Contains(t, ics, "DTSTART:20260915T113000Z")
	assert.Contains(t, ics, "DTEND:20260915T120000Z")
}

func TestBuildICSEscapesSpecials(t *testing.T) {
	b := testBooking()
	b.Service = "Cut; beard, wash"

	ics, err := BuildICS(b, time.UTC, 30)
	require.NoError(t, err)

	assert.Contains(t, ics, "SUMMARY:Barbershop: Cut\\; beard\\, wash")
}

func TestBuildICSRejectsBadTime(t *testing.T) {
	b := testBooking()
	b.Time = "25:99"

	_, err := BuildICS(b, time.UTC, 30)
	assert.Error(t, err)
}
