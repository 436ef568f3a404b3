package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp075/salon-booking-system/internal/domain"
	ownerRepo "github.com/sp075/salon-booking-system/internal/infra/storage/owner"
)

type statusUpdate struct {
	id        uuid.UUID
	from      domain.BookingStatus
	to        domain.BookingStatus
	clearHold bool
}

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	updateErr error
	updates   []statusUpdate
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) GetByCustomer(_ context.Context, _ uuid.UUID, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, f.getErr
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetByOwnerWithFilter(_ context.Context, _ domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, f.getErr
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.BookingStatus, clearHold bool) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, statusUpdate{id: id, from: from, to: to, clearHold: clearHold})
	return nil
}

type fakeOwnerRepo struct {
	profile *domain.OwnerProfile
	err     error
}

func (f *fakeOwnerRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*domain.OwnerProfile, error) {
	return f.profile, f.err
}

type fixedTimeProvider struct{ now time.Time }

func (f fixedTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func pendingBooking(customerID, ownerProfileID uuid.UUID, heldAgo time.Duration) *domain.Booking {
	heldAt := testNow.Add(-heldAgo)
	return &domain.Booking{
		ID:             uuid.New(),
		CustomerID:     customerID,
		OwnerProfileID: ownerProfileID,
		BookingDate:    time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "10:30",
		Status:         domain.StatusPending,
		HeldAt:         &heldAt,
	}
}

func newTestService(bookings *fakeBookingRepo, owners *fakeOwnerRepo) *Service {
	return NewService(bookings, owners, domain.DefaultBookingPolicy(), fixedTimeProvider{now: testNow}, noopLogger{})
}

func TestConfirm(t *testing.T) {
	customerID := uuid.New()

	t.Run("pending booking with live hold", func(t *testing.T) {
		booking := pendingBooking(customerID, uuid.New(), 5*time.Minute)
		repo := &fakeBookingRepo{booking: booking}
		svc := newTestService(repo, &fakeOwnerRepo{})

		err := svc.Confirm(context.Background(), booking.ID, customerID)
		require.NoError(t, err)

		require.Len(t, repo.updates, 1)
		assert.Equal(t, domain.StatusPending, repo.updates[0].from)
		assert.Equal(t, domain.StatusConfirmed, repo.updates[0].to)
		assert.True(t, repo.updates[0].clearHold, "confirm must release the hold")
	})

	t.Run("expired hold", func(t *testing.T) {
		booking := pendingBooking(customerID, uuid.New(), 11*time.Minute)
		repo := &fakeBookingRepo{booking: booking}
		svc := newTestService(repo, &fakeOwnerRepo{})

		err := svc.Confirm(context.Background(), booking.ID, customerID)

		assert.ErrorIs(t, err, ErrHoldExpired)
		assert.Empty(t, repo.updates)
	})

	t.Run("foreign booking", func(t *testing.T) {
		booking := pendingBooking(uuid.New(), uuid.New(), 5*time.Minute)
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{})

		err := svc.Confirm(context.Background(), booking.ID, customerID)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already confirmed", func(t *testing.T) {
		booking := pendingBooking(customerID, uuid.New(), 5*time.Minute)
		booking.Status = domain.StatusConfirmed
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{})

		err := svc.Confirm(context.Background(), booking.ID, customerID)

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestCancel(t *testing.T) {
	customerID := uuid.New()

	t.Run("pending booking", func(t *testing.T) {
		booking := pendingBooking(customerID, uuid.New(), 5*time.Minute)
		repo := &fakeBookingRepo{booking: booking}
		svc := newTestService(repo, &fakeOwnerRepo{})

		err := svc.Cancel(context.Background(), booking.ID, customerID)
		require.NoError(t, err)

		require.Len(t, repo.updates, 1)
		assert.Equal(t, domain.StatusCancelled, repo.updates[0].to)
		assert.False(t, repo.updates[0].clearHold)
	})

	t.Run("confirmed booking", func(t *testing.T) {
		booking := pendingBooking(customerID, uuid.New(), 5*time.Minute)
		booking.Status = domain.StatusConfirmed
		repo := &fakeBookingRepo{booking: booking}
		svc := newTestService(repo, &fakeOwnerRepo{})

		err := svc.Cancel(context.Background(), booking.ID, customerID)
		require.NoError(t, err)

		require.Len(t, repo.updates, 1)
		assert.Equal(t, domain.StatusConfirmed, repo.updates[0].from)
	})

	t.Run("completed booking", func(t *testing.T) {
		booking := pendingBooking(customerID, uuid.New(), 5*time.Minute)
		booking.Status = domain.StatusCompleted
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{})

		err := svc.Cancel(context.Background(), booking.ID, customerID)

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestOwnerConfirm(t *testing.T) {
	ownerUserID := uuid.New()
	profile := &domain.OwnerProfile{ID: uuid.New(), UserID: ownerUserID}

	t.Run("own salon booking", func(t *testing.T) {
		booking := pendingBooking(uuid.New(), profile.ID, 5*time.Minute)
		repo := &fakeBookingRepo{booking: booking}
		svc := newTestService(repo, &fakeOwnerRepo{profile: profile})

		err := svc.OwnerConfirm(context.Background(), booking.ID, ownerUserID)
		require.NoError(t, err)

		require.Len(t, repo.updates, 1)
		assert.Equal(t, domain.StatusConfirmed, repo.updates[0].to)
		assert.True(t, repo.updates[0].clearHold)
	})

	t.Run("foreign salon booking", func(t *testing.T) {
		booking := pendingBooking(uuid.New(), uuid.New(), 5*time.Minute)
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{profile: profile})

		err := svc.OwnerConfirm(context.Background(), booking.ID, ownerUserID)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("user without owner profile", func(t *testing.T) {
		booking := pendingBooking(uuid.New(), uuid.New(), 5*time.Minute)
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{err: ownerRepo.ErrProfileNotFound})

		err := svc.OwnerConfirm(context.Background(), booking.ID, ownerUserID)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestOwnerReject(t *testing.T) {
	ownerUserID := uuid.New()
	profile := &domain.OwnerProfile{ID: uuid.New(), UserID: ownerUserID}

	t.Run("rejects confirmed booking", func(t *testing.T) {
		booking := pendingBooking(uuid.New(), profile.ID, 5*time.Minute)
		booking.Status = domain.StatusConfirmed
		repo := &fakeBookingRepo{booking: booking}
		svc := newTestService(repo, &fakeOwnerRepo{profile: profile})

		err := svc.OwnerReject(context.Background(), booking.ID, ownerUserID)
		require.NoError(t, err)

		require.Len(t, repo.updates, 1)
		assert.Equal(t, domain.StatusRejected, repo.updates[0].to)
	})

	t.Run("cancelled booking cannot be rejected", func(t *testing.T) {
		booking := pendingBooking(uuid.New(), profile.ID, 5*time.Minute)
		booking.Status = domain.StatusCancelled
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{profile: profile})

		err := svc.OwnerReject(context.Background(), booking.ID, ownerUserID)

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})
}

func TestGetByID_Access(t *testing.T) {
	customerID := uuid.New()
	ownerUserID := uuid.New()
	profile := &domain.OwnerProfile{ID: uuid.New(), UserID: ownerUserID}
	booking := pendingBooking(customerID, profile.ID, 5*time.Minute)

	t.Run("customer sees own booking", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{err: ownerRepo.ErrProfileNotFound})

		resp, err := svc.GetByID(context.Background(), booking.ID, customerID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, resp.ID)
	})

	t.Run("salon owner sees booking", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{profile: profile})

		resp, err := svc.GetByID(context.Background(), booking.ID, ownerUserID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, resp.ID)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeOwnerRepo{err: ownerRepo.ErrProfileNotFound})

		_, err := svc.GetByID(context.Background(), booking.ID, uuid.New())

		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
