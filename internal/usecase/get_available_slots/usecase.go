package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/sp075/salon-booking-system/internal/domain"
	ownerRepo "github.com/sp075/salon-booking-system/internal/infra/storage/owner"
)

// UseCase use case для получения доступных слотов для бронирования
// Чистая последовательность: сетка -> обед -> занятые слоты -> непрерывные окна
type UseCase struct {
	bookingRepo BookingRepository
	ownerRepo   OwnerRepository
	policy      domain.BookingPolicy
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ownerRepo OwnerRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		ownerRepo:   ownerRepo,
		policy:      policy,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: owner=%s, date=%s, services=%d",
		req.OwnerProfileID, req.Date.Format(domain.DateFormat), len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем профиль владельца с рабочими часами
	profile, err := uc.ownerRepo.GetByID(ctx, req.OwnerProfileID)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrProfileNotFound) {
			uc.logger.Warn("GetAvailableSlots: owner profile %s not found", req.OwnerProfileID)
			return nil, ErrOwnerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get owner profile %s: %v", req.OwnerProfileID, err)
		return nil, fmt.Errorf("%w: failed to get owner profile: %v", ErrInternal, err)
	}

	// 3. Выходной день: пустой результат без дальнейших вычислений
	if profile.IsDayOff(req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is a day off for owner=%s",
			req.Date.Format(domain.DateFormat), req.OwnerProfileID)
		return uc.emptyResponse(req), nil
	}

	// 4. Расписание не заполнено: бронировать нечего
	if !profile.HasWorkingHours() {
		uc.logger.Info("GetAvailableSlots: owner=%s has no working hours configured", req.OwnerProfileID)
		return uc.emptyResponse(req), nil
	}

	// 5. Генерируем сетку слотов и убираем обед
	slots, err := generateSlots(profile.OpenTime, profile.CloseTime, uc.policy.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for owner=%s: %v", req.OwnerProfileID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	slots = excludeLunch(slots, uc.policy.LunchStart, uc.policy.LunchEnd)

	// 6. Убираем слоты, занятые живыми бронированиями (pending + confirmed)
	booked, err := uc.bookingRepo.GetBookedSlots(ctx, req.OwnerProfileID, req.Date, domain.BlockingStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots for owner=%s: %v", req.OwnerProfileID, err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}
	slots = excludeBooked(slots, booked)

	// 7. Для нескольких услуг оставляем только старты непрерывных окон нужной длины
	slots = reduceToContiguousRuns(slots, req.serviceCount())

	uc.logger.Info("GetAvailableSlots: %d slots available for owner=%s, date=%s",
		len(slots), req.OwnerProfileID, req.Date.Format(domain.DateFormat))

	return &Response{
		OwnerProfileID: req.OwnerProfileID,
		Date:           req.Date,
		Slots:          slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		OwnerProfileID: req.OwnerProfileID,
		Date:           req.Date,
		Slots:          []domain.Slot{},
	}
}
