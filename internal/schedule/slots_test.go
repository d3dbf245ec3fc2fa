package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsDefaultGrid(t *testing.T) {
	slots := Slots("10:00", "19:00", 30)

	require.Len(t, slots, 18)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "18:30", slots[len(slots)-1])

	// Strictly ascending, zero-padded labels.
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
		assert.Len(t, slots[i], 5)
	}
}

func TestSlotsStepVariants(t *testing.T) {
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, Slots("09:00", "12:00", 60))
	assert.Equal(t, []string{"09:15", "09:30"}, Slots("09:15", "09:45", 15))

	// End is exclusive: a slot starting exactly at close is not offered.
	slots := Slots("18:00", "19:00", 30)
	assert.Equal(t, []string{"18:00", "18:30"}, slots)
}

func TestSlotsStartAfterEnd(t *testing.T) {
	assert.Empty(t, Slots("19:00", "10:00", 30))
	assert.Empty(t, Slots("10:00", "10:00", 30))
}

func TestSlotsBadInput(t *testing.T) {
	assert.Nil(t, Slots("banana", "19:00", 30))
	assert.Nil(t, Slots("10:00", "25:00", 30))
}

func TestResolveEmptyBooked(t *testing.T) {
	grid := DefaultGrid()
	got := Resolve(grid, nil)

	assert.Equal(t, grid, got.Available)
	assert.Empty(t, got.Booked)
	assert.NotNil(t, got.Booked, "booked must encode as [] not null")
}

func TestResolveExcludesBookedFromAvailable(t *testing.T) {
	grid := DefaultGrid()
	got := Resolve(grid, []string{"10:00", "15:30"})

	assert.NotContains(t, got.Available, "10:00")
	assert.NotContains(t, got.Available, "15:30")
	assert.Contains(t, got.Booked, "10:00")
	assert.Len(t, got.Available, len(grid)-2)

	// Grid order preserved.
	assert.Equal(t, "10:30", got.Available[0])
}

func TestResolveKeepsOffGridBookings(t *testing.T) {
	got := Resolve([]string{"10:00", "10:30"}, []string{"09:17"})
	assert.Equal(t, []string{"10:00", "10:30"}, got.Available)
	assert.Equal(t, []string{"09:17"}, got.Booked)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2025-12-01")
	assert.NoError(t, err)

	_, err = ParseDate("01-12-2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
