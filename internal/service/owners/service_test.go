package owners

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp075/salon-booking-system/internal/domain"
	ownerRepo "github.com/sp075/salon-booking-system/internal/infra/storage/owner"
	"github.com/sp075/salon-booking-system/internal/service/owners/models"
	"github.com/sp075/salon-booking-system/pkg/ptr"
	"github.com/sp075/salon-booking-system/pkg/types"
)

type fakeOwnerRepo struct {
	profile *domain.OwnerProfile
	err     error

	scheduleOpen  string
	scheduleClose string
	scheduleDay   *int
}

func (f *fakeOwnerRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*domain.OwnerProfile, error) {
	return f.profile, f.err
}

func (f *fakeOwnerRepo) UpdateSchedule(_ context.Context, _ uuid.UUID, openTime, closeTime string, dayOff *int) (*domain.OwnerProfile, error) {
	f.scheduleOpen = openTime
	f.scheduleClose = closeTime
	f.scheduleDay = dayOff

	updated := *f.profile
	updated.OpenTime = types.TimeString(openTime)
	updated.CloseTime = types.TimeString(closeTime)
	updated.DayOff = dayOff
	return &updated, nil
}

func (f *fakeOwnerRepo) UpdateProfile(_ context.Context, _ uuid.UUID, salonName, address *string) (*domain.OwnerProfile, error) {
	updated := *f.profile
	if salonName != nil {
		updated.SalonName = salonName
	}
	if address != nil {
		updated.Address = address
	}
	return &updated, nil
}

type fakeCatalogRepo struct {
	catalog   []*domain.Service
	offerings []*domain.OwnerService
	deleteErr error

	upserted *models.AddServiceRequest
}

func (f *fakeCatalogRepo) ListServices(_ context.Context) ([]*domain.Service, error) {
	return f.catalog, nil
}

func (f *fakeCatalogRepo) GetOfferedServices(_ context.Context, _ uuid.UUID) ([]*domain.OwnerService, error) {
	return f.offerings, nil
}

func (f *fakeCatalogRepo) UpsertOwnerService(_ context.Context, ownerProfileID uuid.UUID, serviceID int64, customPrice *float64) (*domain.OwnerService, error) {
	f.upserted = &models.AddServiceRequest{ServiceID: serviceID, CustomPrice: customPrice}
	return &domain.OwnerService{
		ID:             1,
		OwnerProfileID: ownerProfileID,
		ServiceID:      serviceID,
		IsActive:       true,
		CustomPrice:    customPrice,
	}, nil
}

func (f *fakeCatalogRepo) DeleteOwnerService(_ context.Context, _ uuid.UUID, _ int64) error {
	return f.deleteErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testProfile() *domain.OwnerProfile {
	return &domain.OwnerProfile{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SalonName: ptr.Ptr("Салон"),
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}
}

func TestGetProfile(t *testing.T) {
	t.Run("existing profile", func(t *testing.T) {
		owners := &fakeOwnerRepo{profile: testProfile()}
		svc := NewService(owners, &fakeCatalogRepo{}, noopLogger{})

		resp, err := svc.GetProfile(context.Background(), owners.profile.UserID)
		require.NoError(t, err)

		assert.Equal(t, owners.profile.ID, resp.ID)
		require.NotNil(t, resp.SalonName)
		assert.Equal(t, "Салон", *resp.SalonName)
		assert.Equal(t, "09:00", resp.OpenTime)
	})

	t.Run("no owner profile", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{err: ownerRepo.ErrProfileNotFound}, &fakeCatalogRepo{}, noopLogger{})

		_, err := svc.GetProfile(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("updates salon name and address", func(t *testing.T) {
		owners := &fakeOwnerRepo{profile: testProfile()}
		svc := NewService(owners, &fakeCatalogRepo{}, noopLogger{})

		resp, err := svc.UpdateProfile(context.Background(), owners.profile.UserID, &models.UpdateProfileRequest{
			SalonName: ptr.Ptr("Новый салон"),
			Address:   ptr.Ptr("ул. Ленина, 1"),
		})
		require.NoError(t, err)

		require.NotNil(t, resp.SalonName)
		assert.Equal(t, "Новый салон", *resp.SalonName)
		require.NotNil(t, resp.Address)
		assert.Equal(t, "ул. Ленина, 1", *resp.Address)
	})

	t.Run("no owner profile", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{err: ownerRepo.ErrProfileNotFound}, &fakeCatalogRepo{}, noopLogger{})

		_, err := svc.UpdateProfile(context.Background(), uuid.New(), &models.UpdateProfileRequest{
			SalonName: ptr.Ptr("Новый салон"),
		})

		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestUpdateSchedule(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		owners := &fakeOwnerRepo{profile: testProfile()}
		svc := NewService(owners, &fakeCatalogRepo{}, noopLogger{})

		resp, err := svc.UpdateSchedule(context.Background(), owners.profile.UserID, &models.UpdateScheduleRequest{
			OpenTime:  "10:00",
			CloseTime: "19:00",
			DayOff:    ptr.Ptr(1),
		})
		require.NoError(t, err)

		assert.Equal(t, "10:00", owners.scheduleOpen)
		assert.Equal(t, "19:00", owners.scheduleClose)
		assert.Equal(t, "10:00", resp.OpenTime)
		require.NotNil(t, resp.DayOff)
		assert.Equal(t, 1, *resp.DayOff)
	})

	t.Run("open after close", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{profile: testProfile()}, &fakeCatalogRepo{}, noopLogger{})

		_, err := svc.UpdateSchedule(context.Background(), uuid.New(), &models.UpdateScheduleRequest{
			OpenTime:  "19:00",
			CloseTime: "10:00",
		})

		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("bad time format", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{profile: testProfile()}, &fakeCatalogRepo{}, noopLogger{})

		_, err := svc.UpdateSchedule(context.Background(), uuid.New(), &models.UpdateScheduleRequest{
			OpenTime:  "9am",
			CloseTime: "18:00",
		})

		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("day off out of range", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{profile: testProfile()}, &fakeCatalogRepo{}, noopLogger{})

		_, err := svc.UpdateSchedule(context.Background(), uuid.New(), &models.UpdateScheduleRequest{
			OpenTime:  "09:00",
			CloseTime: "18:00",
			DayOff:    ptr.Ptr(7),
		})

		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("no owner profile", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{err: ownerRepo.ErrProfileNotFound}, &fakeCatalogRepo{}, noopLogger{})

		_, err := svc.UpdateSchedule(context.Background(), uuid.New(), &models.UpdateScheduleRequest{
			OpenTime:  "09:00",
			CloseTime: "18:00",
		})

		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestAddService(t *testing.T) {
	catalog := []*domain.Service{
		{ID: 1, Name: "Стрижка", DefaultPrice: 1500, DurationMinutes: 30},
	}

	t.Run("catalog service with custom price", func(t *testing.T) {
		owners := &fakeOwnerRepo{profile: testProfile()}
		catalogRepo := &fakeCatalogRepo{catalog: catalog}
		svc := NewService(owners, catalogRepo, noopLogger{})

		resp, err := svc.AddService(context.Background(), owners.profile.UserID, &models.AddServiceRequest{
			ServiceID:   1,
			CustomPrice: ptr.Ptr(2000.0),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ServiceID)
		assert.Equal(t, "Стрижка", resp.Name)
		assert.Equal(t, 2000.0, resp.Price)
		assert.True(t, resp.IsActive)
	})

	t.Run("unknown service", func(t *testing.T) {
		owners := &fakeOwnerRepo{profile: testProfile()}
		svc := NewService(owners, &fakeCatalogRepo{catalog: catalog}, noopLogger{})

		_, err := svc.AddService(context.Background(), owners.profile.UserID, &models.AddServiceRequest{ServiceID: 99})

		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("negative custom price", func(t *testing.T) {
		svc := NewService(&fakeOwnerRepo{profile: testProfile()}, &fakeCatalogRepo{catalog: catalog}, noopLogger{})

		_, err := svc.AddService(context.Background(), uuid.New(), &models.AddServiceRequest{
			ServiceID:   1,
			CustomPrice: ptr.Ptr(-100.0),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetServices(t *testing.T) {
	owners := &fakeOwnerRepo{profile: testProfile()}
	catalogRepo := &fakeCatalogRepo{offerings: []*domain.OwnerService{
		{
			ID:        1,
			ServiceID: 1,
			IsActive:  true,
			Service:   &domain.Service{ID: 1, Name: "Стрижка", DefaultPrice: 1500},
		},
		{
			ID:          2,
			ServiceID:   2,
			IsActive:    false,
			CustomPrice: ptr.Ptr(500.0),
			Service:     &domain.Service{ID: 2, Name: "Укладка", DefaultPrice: 800},
		},
	}}
	svc := NewService(owners, catalogRepo, noopLogger{})

	resp, err := svc.GetServices(context.Background(), owners.profile.UserID)
	require.NoError(t, err)

	require.Len(t, resp.Services, 2)
	assert.Equal(t, 1500.0, resp.Services[0].Price)
	assert.Equal(t, 500.0, resp.Services[1].Price)
	assert.False(t, resp.Services[1].IsActive)
}
