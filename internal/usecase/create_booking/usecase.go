package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/sp075/salon-booking-system/internal/domain"
	availableSlots "github.com/sp075/salon-booking-system/internal/usecase/get_available_slots"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// UseCase use case для создания бронирования
// Проверка доступности и вставка выполняются в одной serializable транзакции:
// повторная выборка занятых слотов внутри транзакции блокирует конкурирующие
// бронирования, и из двух одновременных запросов на один слот проходит ровно один
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	availability AvailabilityProvider
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	availability AvailabilityProvider,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		availability: availability,
		txManager:    txManager,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, owner=%s, date=%s, start=%s, services=%d",
		req.CustomerID, req.OwnerProfileID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование не может пересекать полночь
	endTime, err := uc.computeEndTime(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var created *domain.Booking

	// 3. Проверка доступности и вставка в одной serializable транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Пересчитываем свободные слоты; выборка занятых идёт с FOR UPDATE
		avail, err := uc.availability.Execute(txCtx, &availableSlots.Request{
			OwnerProfileID: req.OwnerProfileID,
			Date:           req.Date,
		})
		if err != nil {
			if errors.Is(err, availableSlots.ErrOwnerNotFound) {
				return ErrOwnerNotFound
			}
			return fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
		}

		// 3.2. Запрошенное время должно быть свободным стартовым слотом
		startIdx := -1
		for i, slot := range avail.Slots {
			if slot.Start == req.StartTime {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			return ErrSlotNotAvailable
		}

		// 3.3. От стартового слота должно оставаться непрерывное окно на все услуги
		runLength := len(req.ServiceIDs)
		if startIdx+runLength > len(avail.Slots) {
			return ErrNotEnoughSlots
		}
		for j := 0; j < runLength-1; j++ {
			if avail.Slots[startIdx+j].End != avail.Slots[startIdx+j+1].Start {
				return ErrNotEnoughSlots
			}
		}

		// 3.4. Определяем цены по прайсу владельца
		prices, totalPrice, err := uc.resolvePrices(txCtx, req)
		if err != nil {
			return err
		}

		// 3.5. Собираем бронирование с назначениями услуг по слотам
		now := uc.timeProvider.Now()
		booking := &domain.Booking{
			CustomerID:     req.CustomerID,
			OwnerProfileID: req.OwnerProfileID,
			BookingDate:    req.Date,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			TotalPrice:     totalPrice,
			Status:         domain.StatusPending,
			HeldAt:         &now,
		}
		for i, serviceID := range req.ServiceIDs {
			slot := avail.Slots[startIdx+i]
			booking.Services = append(booking.Services, domain.BookingServiceAssignment{
				ServiceID: serviceID,
				SlotStart: slot.Start,
				SlotEnd:   slot.End,
				Price:     prices[serviceID],
			})
		}

		created, err = uc.bookingRepo.CreateWithServices(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: customer=%s, owner=%s: %v", req.CustomerID, req.OwnerProfileID, err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking %s created, owner=%s, date=%s, %s-%s, total=%.2f",
		created.ID, req.OwnerProfileID, req.Date.Format(domain.DateFormat),
		created.StartTime, created.EndTime, created.TotalPrice)

	return &Response{Booking: created}, nil
}

// computeEndTime считает время окончания: старт плюс ширина слота на каждую услугу
// Длительности услуг из каталога на сетку не влияют, каждая услуга занимает один слот
func (uc *UseCase) computeEndTime(req *Request) (types.TimeString, error) {
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	totalMinutes := uc.policy.SlotDurationMinutes * len(req.ServiceIDs)
	if startMinutes+totalMinutes >= 24*60 {
		return "", ErrCrossesMidnight
	}

	return types.FromMinutes(startMinutes + totalMinutes), nil
}

// resolvePrices возвращает цену каждой запрошенной услуги из прайса владельца
// Услуга должна быть включена владельцем и активна; действует кастомная цена,
// иначе базовая цена из каталога
func (uc *UseCase) resolvePrices(ctx context.Context, req *Request) (map[int64]float64, float64, error) {
	offered, err := uc.catalogRepo.GetOfferedServices(ctx, req.OwnerProfileID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to get offered services: %v", ErrInternal, err)
	}

	byServiceID := make(map[int64]*domain.OwnerService, len(offered))
	for _, os := range offered {
		byServiceID[os.ServiceID] = os
	}

	prices := make(map[int64]float64, len(req.ServiceIDs))
	var total float64
	for _, serviceID := range req.ServiceIDs {
		os, ok := byServiceID[serviceID]
		if !ok || !os.IsActive {
			return nil, 0, fmt.Errorf("%w: serviceID=%d", ErrServiceNotOffered, serviceID)
		}
		price := os.EffectivePrice()
		prices[serviceID] = price
		total += price
	}

	return prices, total, nil
}
