package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"barberbook/internal/config"
	"barberbook/internal/database"
	"barberbook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookedTimes(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *mockRepo) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockRepo) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// stubNotifier avoids testify mocks because operator notices run on their
// own goroutine.
type stubNotifier struct {
	mu          sync.Mutex
	confirmErr  error
	confirmed   []int64
	operatorLog []int64
}

func (n *stubNotifier) SendConfirmation(_ context.Context, b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.confirmErr != nil {
		return n.confirmErr
	}
	n.confirmed = append(n.confirmed, b.ID)
	return nil
}

func (n *stubNotifier) NotifyOperator(_ context.Context, b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.operatorLog = append(n.operatorLog, b.ID)
	return nil
}

type stubCache struct {
	mu          sync.Mutex
	data        map[string][]string
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]string)}
}

func (c *stubCache) GetBookedTimes(_ context.Context, date string) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	times, ok := c.data[date]
	return times, ok, nil
}

func (c *stubCache) SetBookedTimes(_ context.Context, date string, times []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[date] = times
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, date)
	c.invalidated = append(c.invalidated, date)
	return nil
}

func newTestService(repo *mockRepo, notifier *stubNotifier, cache *stubCache) *BookingService {
	logger := zerolog.New(io.Discard)
	if cache == nil {
		return NewBookingService(repo, nil, notifier, nil, nil, nil, config.ScheduleConfig{}, &logger)
	}
	return NewBookingService(repo, cache, notifier, nil, nil, nil, config.ScheduleConfig{}, &logger)
}

func validInput() BookingInput {
	return BookingInput{
		Name:    "  Ivan  ",
		Email:   " IVAN@Example.COM ",
		Phone:   "+10000000000",
		Date:    "2026-09-15",
		Time:    "14:30",
		Service: "Haircut",
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := new(mockRepo)
	notifier := &stubNotifier{}
	svc := newTestService(repo, notifier, nil)

	repo.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.Name == "Ivan" && b.Email == "ivan@example.com" && b.Status == models.StatusConfirmed
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Booking).ID = 42
	}).Return(nil)

	booking, mailOk, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, mailOk)
	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, "Ivan", booking.Name)
	assert.Equal(t, "ivan@example.com", booking.Email)
	repo.AssertExpectations(t)
}

func TestCreateBookingMissingFields(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, &stubNotifier{}, nil)

	for _, mutate := range []func(*BookingInput){
		func(in *BookingInput) { in.Name = "   " },
		func(in *BookingInput) { in.Email = "" },
		func(in *BookingInput) { in.Phone = "" },
		func(in *BookingInput) { in.Date = "" },
		func(in *BookingInput) { in.Time = "" },
		func(in *BookingInput) { in.Service = "\t" },
	} {
		in := validInput()
		mutate(&in)
		_, _, err := svc.CreateBooking(context.Background(), in)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBookingInvalidDate(t *testing.T) {
	svc := newTestService(new(mockRepo), &stubNotifier{}, nil)

	in := validInput()
	in.Date = "15.09.2026"
	_, _, err := svc.CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, &stubNotifier{}, nil)

	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(database.ErrSlotTaken)

	_, _, err := svc.CreateBooking(context.Background(), validInput())
	assert.ErrorIs(t, err, database.ErrSlotTaken)
}

func TestCreateBookingMailFailureKeepsBooking(t *testing.T) {
	repo := new(mockRepo)
	notifier := &stubNotifier{confirmErr: assert.AnError}
	svc := newTestService(repo, notifier, nil)

	repo.On("CreateBooking", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Booking).ID = 7
	}).Return(nil)

	booking, mailOk, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, mailOk)
	assert.Equal(t, int64(7), booking.ID)
}

func TestCreateBookingInvalidatesCache(t *testing.T) {
	repo := new(mockRepo)
	cache := newStubCache()
	cache.data["2026-09-15"] = []string{"10:00"}
	svc := newTestService(repo, &stubNotifier{}, cache)

	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

	_, _, err := svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, "2026-09-15")
}

func TestToggleStatus(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, &stubNotifier{}, nil)

	repo.On("GetBooking", mock.Anything, int64(1)).Return(&models.Booking{ID: 1, Status: models.StatusConfirmed}, nil).Once()
	repo.On("UpdateBookingStatus", mock.Anything, int64(1), models.StatusDone).Return(nil).Once()

	booking, err := svc.ToggleStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, booking.Status)

	repo.On("GetBooking", mock.Anything, int64(1)).Return(&models.Booking{ID: 1, Status: models.StatusDone}, nil).Once()
	repo.On("UpdateBookingStatus", mock.Anything, int64(1), models.StatusConfirmed).Return(nil).Once()

	booking, err = svc.ToggleStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	repo.AssertExpectations(t)
}

func TestToggleStatusInvalidatesCache(t *testing.T) {
	repo := new(mockRepo)
	cache := newStubCache()
	svc := newTestService(repo, &stubNotifier{}, cache)

	repo.On("GetBooking", mock.Anything, int64(1)).Return(&models.Booking{ID: 1, Date: "2026-09-15", Status: models.StatusConfirmed}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, int64(1), models.StatusDone).Return(nil)

	_, err := svc.ToggleStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, "2026-09-15")
}

func TestToggleStatusNotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, &stubNotifier{}, nil)

	repo.On("GetBooking", mock.Anything, int64(99)).Return(nil, database.ErrNotFound)

	_, err := svc.ToggleStatus(context.Background(), 99)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteBooking(t *testing.T) {
	repo := new(mockRepo)
	cache := newStubCache()
	svc := newTestService(repo, &stubNotifier{}, cache)

	repo.On("GetBooking", mock.Anything, int64(3)).Return(&models.Booking{ID: 3, Date: "2026-09-15"}, nil)
	repo.On("DeleteBooking", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, svc.DeleteBooking(context.Background(), 3))
	assert.Contains(t, cache.invalidated, "2026-09-15")
}

func TestDeleteBookingNotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, &stubNotifier{}, nil)

	repo.On("GetBooking", mock.Anything, int64(5)).Return(nil, database.ErrNotFound)

	err := svc.DeleteBooking(context.Background(), 5)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGetAvailabilityInvalidDate(t *testing.T) {
	svc := newTestService(new(mockRepo), &stubNotifier{}, nil)

	_, err := svc.GetAvailability(context.Background(), "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetAvailabilityFromStore(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, &stubNotifier{}, nil)

	repo.On("GetBookedTimes", mock.Anything, "2026-09-15").Return([]string{"10:00", "14:30"}, nil)

	av, err := svc.GetAvailability(context.Background(), "2026-09-15")
	require.NoError(t, err)
	assert.Len(t, av.Available, 16)
	assert.Equal(t, []string{"10:00", "14:30"}, av.Booked)
	assert.NotContains(t, av.Available, "10:00")
	assert.NotContains(t, av.Available, "14:30")
}

func TestGetAvailabilityUsesCache(t *testing.T) {
	repo := new(mockRepo)
	cache := newStubCache()
	cache.data["2026-09-15"] = []string{"11:00"}
	svc := newTestService(repo, &stubNotifier{}, cache)

	av, err := svc.GetAvailability(context.Background(), "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00"}, av.Booked)
	repo.AssertNotCalled(t, "GetBookedTimes", mock.Anything, mock.Anything)
}

func TestGetAvailabilityPopulatesCache(t *testing.T) {
	repo := new(mockRepo)
	cache := newStubCache()
	svc := newTestService(repo, &stubNotifier{}, cache)

	repo.On("GetBookedTimes", mock.Anything, "2026-09-15").Return([]string{"12:00"}, nil).Once()

	_, err := svc.GetAvailability(context.Background(), "2026-09-15")
	require.NoError(t, err)

	// Second call is served from the cache.
	_, err = svc.GetAvailability(context.Background(), "2026-09-15")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
