package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/provider"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Проверка слота и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, provider=%d, service=%q, date=%s, time=%s",
		req.UserID, req.ProviderID, req.ServiceName, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот не должен быть в прошлом
	if err := validateBookingTime(req.Date, req.TimeSlot, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем мастера
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Услуга должна быть в списке мастера
	service, ok := provider.FindService(req.ServiceName)
	if !ok {
		uc.logger.Warn("CreateBooking: provider id=%d does not offer %q", req.ProviderID, req.ServiceName)
		return nil, ErrServiceNotFound
	}

	duration := service.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	var result *domain.Booking

	// 5. Проверка и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		taken, err := uc.bookingRepo.IsSlotTaken(txCtx, req.ProviderID, req.Date, req.TimeSlot)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: slot %s %s of provider=%d already taken",
				req.Date.Format(domain.DateFormat), req.TimeSlot, req.ProviderID)
			return ErrSlotTaken
		}

		booking := &domain.Booking{
			UserID:          req.UserID,
			ProviderID:      req.ProviderID,
			Date:            req.Date,
			TimeSlot:        req.TimeSlot,
			Status:          domain.StatusConfirmed,
			ProviderName:    provider.Name,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			DurationMinutes: duration,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Параллельная запись успела раньше: сработал уникальный индекс
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot taken by concurrent booking")
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		if bookingRepo.IsSlotConflict(err) {
			uc.logger.Warn("CreateBooking: slot taken, transaction lost serialization: %v", err)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ProviderID:      result.ProviderID,
		Date:            result.Date,
		TimeSlot:        result.TimeSlot,
		Status:          string(result.Status),
		DurationMinutes: result.DurationMinutes,
		ProviderName:    result.ProviderName,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
