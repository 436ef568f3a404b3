package owners

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	catalogRepo "github.com/sp075/salon-booking-system/internal/infra/storage/catalog"
	ownerRepo "github.com/sp075/salon-booking-system/internal/infra/storage/owner"
	"github.com/sp075/salon-booking-system/internal/service/owners/models"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// Service сервис для работы с профилями владельцев и их прайсом
type Service struct {
	ownerRepo   OwnerRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса владельцев
func NewService(
	ownerRepo OwnerRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		ownerRepo:   ownerRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// GetProfile получает профиль владельца по userID
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error) {
	s.logger.Info("GetProfile: fetching profile for user=%s", userID)

	profile, err := s.getProfile(ctx, "GetProfile", userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainProfile(profile), nil
}

// UpdateProfile обновляет название салона и адрес
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateProfile: updating profile for user=%s", userID)

	profile, err := s.getProfile(ctx, "UpdateProfile", userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.ownerRepo.UpdateProfile(ctx, profile.ID, req.SalonName, req.Address)
	if err != nil {
		s.logger.Error("UpdateProfile: repository error for owner=%s: %v", profile.ID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: profile updated for owner=%s", profile.ID)
	return models.FromDomainProfile(updated), nil
}

// UpdateSchedule обновляет рабочее расписание владельца
// Новое расписание действует на будущие запросы слотов, существующие
// бронирования не трогает
func (s *Service) UpdateSchedule(ctx context.Context, userID uuid.UUID, req *models.UpdateScheduleRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for user=%s: %s-%s, dayOff=%v",
		userID, req.OpenTime, req.CloseTime, req.DayOff)

	if err := validateSchedule(req); err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for user=%s: %v", userID, err)
		return nil, err
	}

	profile, err := s.getProfile(ctx, "UpdateSchedule", userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.ownerRepo.UpdateSchedule(ctx, profile.ID, req.OpenTime, req.CloseTime, req.DayOff)
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for owner=%s: %v", profile.ID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: schedule updated for owner=%s", profile.ID)
	return models.FromDomainProfile(updated), nil
}

// ListCatalog возвращает общий каталог услуг
func (s *Service) ListCatalog(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListCatalog: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCatalog - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetServices возвращает прайс владельца, включая деактивированные позиции
func (s *Service) GetServices(ctx context.Context, userID uuid.UUID) (*models.OwnerServiceListResponse, error) {
	s.logger.Info("GetServices: fetching services for user=%s", userID)

	profile, err := s.getProfile(ctx, "GetServices", userID)
	if err != nil {
		return nil, err
	}

	offerings, err := s.catalogRepo.GetOfferedServices(ctx, profile.ID)
	if err != nil {
		s.logger.Error("GetServices: repository error for owner=%s: %v", profile.ID, err)
		return nil, fmt.Errorf("%w: GetServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOwnerServiceList(offerings), nil
}

// AddService включает услугу каталога в прайс владельца
// Повторное добавление реактивирует позицию и обновляет цену
func (s *Service) AddService(ctx context.Context, userID uuid.UUID, req *models.AddServiceRequest) (*models.OwnerServiceResponse, error) {
	s.logger.Info("AddService: adding service=%d for user=%s", req.ServiceID, userID)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.CustomPrice != nil && *req.CustomPrice < 0 {
		return nil, fmt.Errorf("%w: customPrice must not be negative", ErrInvalidInput)
	}

	profile, err := s.getProfile(ctx, "AddService", userID)
	if err != nil {
		return nil, err
	}

	// Услуга должна существовать в каталоге
	catalog, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("AddService: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddService - repository error: %v", ErrInternal, err)
	}
	var catalogService *domain.Service
	for _, svc := range catalog {
		if svc.ID == req.ServiceID {
			catalogService = svc
			break
		}
	}
	if catalogService == nil {
		s.logger.Warn("AddService: service=%d not found in catalog", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	offering, err := s.catalogRepo.UpsertOwnerService(ctx, profile.ID, req.ServiceID, req.CustomPrice)
	if err != nil {
		s.logger.Error("AddService: repository error for owner=%s, service=%d: %v", profile.ID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: AddService - repository error: %v", ErrInternal, err)
	}
	offering.Service = catalogService

	s.logger.Info("AddService: service=%d added for owner=%s", req.ServiceID, profile.ID)
	return models.FromDomainOwnerService(offering), nil
}

// RemoveService убирает услугу из прайса владельца
// Существующие бронирования с этой услугой не затрагиваются
func (s *Service) RemoveService(ctx context.Context, userID uuid.UUID, serviceID int64) error {
	s.logger.Info("RemoveService: removing service=%d for user=%s", serviceID, userID)

	profile, err := s.getProfile(ctx, "RemoveService", userID)
	if err != nil {
		return err
	}

	if err := s.catalogRepo.DeleteOwnerService(ctx, profile.ID, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrOfferingNotFound) {
			s.logger.Warn("RemoveService: service=%d not offered by owner=%s", serviceID, profile.ID)
			return ErrOfferingNotFound
		}
		s.logger.Error("RemoveService: repository error for owner=%s, service=%d: %v", profile.ID, serviceID, err)
		return fmt.Errorf("%w: RemoveService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveService: service=%d removed for owner=%s", serviceID, profile.ID)
	return nil
}

// Вспомогательные методы

func (s *Service) getProfile(ctx context.Context, op string, userID uuid.UUID) (*domain.OwnerProfile, error) {
	profile, err := s.ownerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrProfileNotFound) {
			s.logger.Warn("%s: owner profile for user=%s not found", op, userID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("%s: repository error for user=%s: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return profile, nil
}

// validateSchedule проверяет рабочее расписание: корректный формат времени,
// открытие строго раньше закрытия, выходной в диапазоне 0-6
func validateSchedule(req *models.UpdateScheduleRequest) error {
	openTime := types.TimeString(req.OpenTime)
	closeTime := types.TimeString(req.CloseTime)

	if err := openTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidSchedule, err)
	}
	if err := closeTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidSchedule, err)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidSchedule)
	}

	if req.DayOff != nil && (*req.DayOff < domain.MinDayOff || *req.DayOff > domain.MaxDayOff) {
		return fmt.Errorf("%w: dayOff must be between %d and %d", ErrInvalidSchedule, domain.MinDayOff, domain.MaxDayOff)
	}

	return nil
}
