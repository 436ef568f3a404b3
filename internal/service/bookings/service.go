package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	bookingRepo "github.com/sp075/salon-booking-system/internal/infra/storage/booking"
	ownerRepo "github.com/sp075/salon-booking-system/internal/infra/storage/owner"
	"github.com/sp075/salon-booking-system/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
// Все переходы статусов идут через guarded update: репозиторий меняет статус
// только при совпадении текущего, конкурирующий переход получает конфликт
type Service struct {
	bookingRepo  BookingRepository
	ownerRepo    OwnerRepository
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ownerRepo OwnerRepository,
	policy domain.BookingPolicy,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		ownerRepo:    ownerRepo,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видят только его клиент и владелец салона
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID {
		isOwner, err := s.isBookingOwner(ctx, booking, userID)
		if err != nil {
			return nil, err
		}
		if !isOwner {
			s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%s", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%s", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOwnerBookings получает бронирования салона владельца
// Профиль разрешается по userID; опциональные фильтры по дате и статусу
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for user=%s, date=%v, status=%v", req.UserID, req.Date, req.Status)

	profile, err := s.getOwnerProfile(ctx, "GetOwnerBookings", req.UserID)
	if err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter(profile.ID)
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid filter for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%s: %v", profile.ID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: fetched %d bookings for owner=%s", len(bookings), profile.ID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование клиентом
// Доступно только клиенту бронирования и только в статусе pending
// Hold с истекшим таймаутом подтвердить нельзя, такое бронирование заберёт sweep
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, customerID uuid.UUID) error {
	s.logger.Info("Confirm: confirming booking id=%s by customer=%s", id, customerID)

	booking, err := s.getBooking(ctx, "Confirm", id)
	if err != nil {
		return err
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("Confirm: access denied for user=%s to booking id=%s", customerID, id)
		return ErrAccessDenied
	}

	if !booking.Status.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: booking id=%s cannot be confirmed, status=%s", id, booking.Status)
		return ErrInvalidStatusTransition
	}

	if booking.IsHoldExpired(s.timeProvider.Now(), s.policy.HoldTimeout()) {
		s.logger.Warn("Confirm: hold expired for booking id=%s, heldAt=%v", id, booking.HeldAt)
		return ErrHoldExpired
	}

	// Подтверждение снимает hold
	if err := s.updateStatus(ctx, "Confirm", id, booking.Status, domain.StatusConfirmed, true); err != nil {
		return err
	}

	s.logger.Info("Confirm: booking id=%s confirmed by customer", id)
	return nil
}

// Cancel отменяет бронирование клиентом
// Доступно только клиенту бронирования в статусах pending и confirmed
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, customerID uuid.UUID) error {
	s.logger.Info("Cancel: cancelling booking id=%s by customer=%s", id, customerID)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", customerID, id)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return ErrInvalidStatusTransition
	}

	if err := s.updateStatus(ctx, "Cancel", id, booking.Status, domain.StatusCancelled, false); err != nil {
		return err
	}

	s.logger.Info("Cancel: booking id=%s cancelled by customer", id)
	return nil
}

// OwnerConfirm подтверждает бронирование владельцем салона
// Доступно только владельцу салона бронирования и только в статусе pending
func (s *Service) OwnerConfirm(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	s.logger.Info("OwnerConfirm: confirming booking id=%s by user=%s", id, userID)

	booking, err := s.getBooking(ctx, "OwnerConfirm", id)
	if err != nil {
		return err
	}

	if err := s.requireBookingOwner(ctx, "OwnerConfirm", booking, userID); err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("OwnerConfirm: booking id=%s cannot be confirmed, status=%s", id, booking.Status)
		return ErrInvalidStatusTransition
	}

	// Подтверждение владельцем тоже снимает hold
	if err := s.updateStatus(ctx, "OwnerConfirm", id, booking.Status, domain.StatusConfirmed, true); err != nil {
		return err
	}

	s.logger.Info("OwnerConfirm: booking id=%s confirmed by owner", id)
	return nil
}

// OwnerReject отклоняет бронирование владельцем салона
// Доступно только владельцу салона бронирования в статусах pending и confirmed
func (s *Service) OwnerReject(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	s.logger.Info("OwnerReject: rejecting booking id=%s by user=%s", id, userID)

	booking, err := s.getBooking(ctx, "OwnerReject", id)
	if err != nil {
		return err
	}

	if err := s.requireBookingOwner(ctx, "OwnerReject", booking, userID); err != nil {
		return err
	}

	if !booking.CanBeRejected() {
		s.logger.Warn("OwnerReject: booking id=%s cannot be rejected, status=%s", id, booking.Status)
		return ErrInvalidStatusTransition
	}

	if err := s.updateStatus(ctx, "OwnerReject", id, booking.Status, domain.StatusRejected, false); err != nil {
		return err
	}

	s.logger.Info("OwnerReject: booking id=%s rejected by owner", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getOwnerProfile(ctx context.Context, op string, userID uuid.UUID) (*domain.OwnerProfile, error) {
	profile, err := s.ownerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrProfileNotFound) {
			s.logger.Warn("%s: owner profile for user=%s not found", op, userID)
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("%s: repository error for user=%s: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return profile, nil
}

// isBookingOwner проверяет, что userID владеет салоном бронирования
func (s *Service) isBookingOwner(ctx context.Context, booking *domain.Booking, userID uuid.UUID) (bool, error) {
	profile, err := s.ownerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrProfileNotFound) {
			return false, nil
		}
		s.logger.Error("isBookingOwner: repository error for user=%s: %v", userID, err)
		return false, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return profile.ID == booking.OwnerProfileID, nil
}

func (s *Service) requireBookingOwner(ctx context.Context, op string, booking *domain.Booking, userID uuid.UUID) error {
	isOwner, err := s.isBookingOwner(ctx, booking, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, userID, booking.ID)
		return ErrAccessDenied
	}
	return nil
}

// updateStatus выполняет guarded переход статуса
// Конфликт guard (бронирование уже увели из fromStatus) отдаётся как
// ErrInvalidStatusTransition
func (s *Service) updateStatus(ctx context.Context, op string, id uuid.UUID, from, to domain.BookingStatus, clearHold bool) error {
	err := s.bookingRepo.UpdateStatus(ctx, id, from, to, clearHold)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("%s: concurrent status change for booking id=%s, expected=%s", op, id, from)
			return ErrInvalidStatusTransition
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found during status update", op, id)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
