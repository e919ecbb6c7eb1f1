package search_providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// UseCase use case поиска мастеров с учетом занятости слота и расстояния
type UseCase struct {
	providerRepo ProviderRepository
	bookingRepo  BookingRepository
	engine       SearchEngine
	txManager    TransactionManager
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	providerRepo ProviderRepository,
	bookingRepo BookingRepository,
	engine SearchEngine,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет поиск.
// Каталог перечитывается на каждый запрос, результат не кешируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchProviders: query=%q, date=%s, time=%s, hasPosition=%t",
		req.Query, req.Date, req.Time, req.Lat != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchProviders: validation failed: %v", err)
		return nil, err
	}

	filters := domain.SearchFilters{
		Query:        req.Query,
		Date:         req.Date,
		Time:         req.Time,
		RequesterLat: req.Lat,
		RequesterLng: req.Lng,
	}

	// 2. Каталог и занятость слота читаем в одной read-only транзакции
	var (
		providers   []*domain.Provider
		isSlotTaken domain.SlotTakenFunc
	)
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		providers, err = uc.providerRepo.List(txCtx)
		if err != nil {
			uc.logger.Error("SearchProviders: failed to list providers: %v", err)
			return fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
		}

		// 3. Занятость читаем одним запросом и отвечаем предикату из памяти
		isSlotTaken, err = uc.slotTakenPredicate(txCtx, filters)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("SearchProviders: read transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Debug("SearchProviders: catalog=%d, stages=%v", len(providers), uc.engine.Stages(filters))

	// 4. Поиск
	result := uc.engine.Search(providers, filters, isSlotTaken)

	if uc.metrics != nil {
		uc.metrics.ObserveSearch(result.TotalCount, uc.engine.Stages(filters))
	}

	uc.logger.Info("SearchProviders: found %d of %d providers for query=%q",
		result.TotalCount, len(providers), result.Query)

	return &Response{
		Providers:  result.Providers,
		TotalCount: result.TotalCount,
		Query:      result.Query,
	}, nil
}

func (uc *UseCase) slotTakenPredicate(ctx context.Context, filters domain.SearchFilters) (domain.SlotTakenFunc, error) {
	if !filters.HasAvailability() {
		return nil, nil
	}

	// Формат уже проверен в validateRequest
	date, _ := time.Parse(domain.DateFormat, filters.Date)
	slot := domain.TimeSlot(filters.Time)

	takenIDs, err := uc.bookingRepo.GetTakenProviderIDs(ctx, date, slot)
	if err != nil {
		uc.logger.Error("SearchProviders: failed to get taken providers for %s %s: %v", filters.Date, filters.Time, err)
		return nil, fmt.Errorf("%w: failed to get taken providers: %v", ErrInternal, err)
	}

	taken := make(map[int64]struct{}, len(takenIDs))
	for _, id := range takenIDs {
		taken[id] = struct{}{}
	}

	return func(providerID int64, d, t string) bool {
		if d != filters.Date || t != filters.Time {
			return false
		}
		_, ok := taken[providerID]
		return ok
	}, nil
}
