package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp075/salon-booking-system/internal/domain"
	availableSlots "github.com/sp075/salon-booking-system/internal/usecase/get_available_slots"
	"github.com/sp075/salon-booking-system/pkg/ptr"
	"github.com/sp075/salon-booking-system/pkg/types"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) CreateWithServices(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	booking.ID = uuid.New()
	f.created = booking
	return booking, nil
}

type fakeCatalogRepo struct {
	offered []*domain.OwnerService
	err     error
}

func (f *fakeCatalogRepo) GetOfferedServices(_ context.Context, _ uuid.UUID) ([]*domain.OwnerService, error) {
	return f.offered, f.err
}

type fakeAvailability struct {
	slots []domain.Slot
	err   error
}

func (f *fakeAvailability) Execute(_ context.Context, req *availableSlots.Request) (*availableSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &availableSlots.Response{
		OwnerProfileID: req.OwnerProfileID,
		Date:           req.Date,
		Slots:          f.slots,
	}, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (f fixedTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var (
	testNow  = time.Date(2026, time.September, 1, 9, 45, 0, 0, time.UTC)
	testDate = time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
)

func offeredService(serviceID int64, defaultPrice float64, customPrice *float64) *domain.OwnerService {
	return &domain.OwnerService{
		ServiceID:   serviceID,
		IsActive:    true,
		CustomPrice: customPrice,
		Service: &domain.Service{
			ID:           serviceID,
			DefaultPrice: defaultPrice,
		},
	}
}

func freeSlots(times ...string) []domain.Slot {
	slots := make([]domain.Slot, 0, len(times))
	for _, start := range times {
		ts := types.TimeString(start)
		end, _ := ts.AddMinutes(30)
		slots = append(slots, domain.Slot{Start: ts, End: end})
	}
	return slots
}

func newTestUseCase(bookings *fakeBookingRepo, catalog *fakeCatalogRepo, avail *fakeAvailability) *UseCase {
	return NewUseCase(
		bookings,
		catalog,
		avail,
		passthroughTxManager{},
		domain.DefaultBookingPolicy(),
		fixedTimeProvider{now: testNow},
		noopLogger{},
	)
}

func TestExecute_SingleService(t *testing.T) {
	bookings := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{
		offeredService(1, 1500, nil),
	}}
	avail := &fakeAvailability{slots: freeSlots("10:00", "10:30", "11:00")}

	uc := newTestUseCase(bookings, catalog, avail)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:30",
		ServiceIDs:     []int64{1},
	})
	require.NoError(t, err)

	booking := resp.Booking
	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.Equal(t, types.TimeString("10:30"), booking.StartTime)
	assert.Equal(t, types.TimeString("11:00"), booking.EndTime)
	assert.Equal(t, 1500.0, booking.TotalPrice)
	require.NotNil(t, booking.HeldAt)
	assert.Equal(t, testNow, *booking.HeldAt)

	require.Len(t, booking.Services, 1)
	assert.Equal(t, int64(1), booking.Services[0].ServiceID)
	assert.Equal(t, types.TimeString("10:30"), booking.Services[0].SlotStart)
	assert.Equal(t, types.TimeString("11:00"), booking.Services[0].SlotEnd)
}

func TestExecute_MultiService(t *testing.T) {
	bookings := &fakeBookingRepo{}
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{
		offeredService(1, 1500, nil),
		offeredService(2, 800, ptr.Ptr(1000.0)),
	}}
	avail := &fakeAvailability{slots: freeSlots("10:00", "10:30", "11:00")}

	uc := newTestUseCase(bookings, catalog, avail)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:00",
		ServiceIDs:     []int64{1, 2},
	})
	require.NoError(t, err)

	booking := resp.Booking
	assert.Equal(t, types.TimeString("10:00"), booking.StartTime)
	assert.Equal(t, types.TimeString("11:00"), booking.EndTime)
	// Базовая цена первой услуги плюс кастомная цена второй
	assert.Equal(t, 2500.0, booking.TotalPrice)

	require.Len(t, booking.Services, 2)
	assert.Equal(t, types.TimeString("10:00"), booking.Services[0].SlotStart)
	assert.Equal(t, types.TimeString("10:30"), booking.Services[0].SlotEnd)
	assert.Equal(t, 1500.0, booking.Services[0].Price)
	assert.Equal(t, types.TimeString("10:30"), booking.Services[1].SlotStart)
	assert.Equal(t, types.TimeString("11:00"), booking.Services[1].SlotEnd)
	assert.Equal(t, 1000.0, booking.Services[1].Price)
}

func TestExecute_SlotTaken(t *testing.T) {
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{offeredService(1, 1500, nil)}}
	avail := &fakeAvailability{slots: freeSlots("10:00", "11:00")}

	uc := newTestUseCase(&fakeBookingRepo{}, catalog, avail)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:30",
		ServiceIDs:     []int64{1},
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NotEnoughConsecutiveSlots(t *testing.T) {
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{
		offeredService(1, 1500, nil),
		offeredService(2, 800, nil),
	}}
	// 10:00 свободен, но следующий слот занят
	avail := &fakeAvailability{slots: freeSlots("10:00", "11:00", "11:30")}

	uc := newTestUseCase(&fakeBookingRepo{}, catalog, avail)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:00",
		ServiceIDs:     []int64{1, 2},
	})

	assert.ErrorIs(t, err, ErrNotEnoughSlots)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{offeredService(1, 1500, nil)}}
	avail := &fakeAvailability{slots: freeSlots("10:00")}

	uc := newTestUseCase(&fakeBookingRepo{}, catalog, avail)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:00",
		ServiceIDs:     []int64{99},
	})

	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_InactiveServiceNotOffered(t *testing.T) {
	inactive := offeredService(1, 1500, nil)
	inactive.IsActive = false
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{inactive}}
	avail := &fakeAvailability{slots: freeSlots("10:00")}

	uc := newTestUseCase(&fakeBookingRepo{}, catalog, avail)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:00",
		ServiceIDs:     []int64{1},
	})

	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_CrossesMidnight(t *testing.T) {
	catalog := &fakeCatalogRepo{offered: []*domain.OwnerService{
		offeredService(1, 1500, nil),
		offeredService(2, 800, nil),
	}}
	avail := &fakeAvailability{slots: freeSlots("23:30")}

	uc := newTestUseCase(&fakeBookingRepo{}, catalog, avail)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "23:30",
		ServiceIDs:     []int64{1, 2},
	})

	assert.ErrorIs(t, err, ErrCrossesMidnight)
}

func TestExecute_OwnerNotFound(t *testing.T) {
	avail := &fakeAvailability{err: availableSlots.ErrOwnerNotFound}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, avail)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:     uuid.New(),
		OwnerProfileID: uuid.New(),
		Date:           testDate,
		StartTime:      "10:00",
		ServiceIDs:     []int64{1},
	})

	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, &fakeAvailability{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing customer", &Request{OwnerProfileID: uuid.New(), Date: testDate, StartTime: "10:00", ServiceIDs: []int64{1}}},
		{"missing owner", &Request{CustomerID: uuid.New(), Date: testDate, StartTime: "10:00", ServiceIDs: []int64{1}}},
		{"bad time format", &Request{CustomerID: uuid.New(), OwnerProfileID: uuid.New(), Date: testDate, StartTime: "25:00", ServiceIDs: []int64{1}}},
		{"no services", &Request{CustomerID: uuid.New(), OwnerProfileID: uuid.New(), Date: testDate, StartTime: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
