package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	providerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/provider"
)

// UseCase use case для получения слотов мастера на дату
type UseCase struct {
	providerRepo ProviderRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Проверяем существование мастера
	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Занятые слоты на дату
	taken, err := uc.bookingRepo.GetTakenSlots(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get taken slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get taken slots: %v", ErrInternal, err)
	}

	// 5. Собираем сетку
	slots := buildSlots(req.Date, now, taken)

	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, %d of %d slots taken",
		req.ProviderID, req.Date.Format(domain.DateFormat), len(taken), len(slots))

	return &Response{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

// buildSlots размечает всю сетку слотов: занятые и уже начавшиеся сегодня недоступны
func buildSlots(date, now time.Time, taken []domain.TimeSlot) []domain.AvailableSlot {
	takenSet := make(map[domain.TimeSlot]struct{}, len(taken))
	for _, s := range taken {
		takenSet[s] = struct{}{}
	}

	today := isSameDay(date, now)

	result := make([]domain.AvailableSlot, len(domain.TimeSlots))
	for i, slot := range domain.TimeSlots {
		_, isTaken := takenSet[slot]
		available := !isTaken

		if available && today {
			start, err := slot.StartsAt(now)
			if err != nil || !start.After(now) {
				available = false
			}
		}

		result[i] = domain.AvailableSlot{TimeSlot: slot, Available: available}
	}

	return result
}
