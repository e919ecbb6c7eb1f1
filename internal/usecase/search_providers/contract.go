package search_providers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// ProviderRepository интерфейс каталога мастеров
type ProviderRepository interface {
	List(ctx context.Context) ([]*domain.Provider, error)
}

// BookingRepository интерфейс журнала записей
type BookingRepository interface {
	// GetTakenProviderIDs мастера с подтвержденной записью на (date, slot)
	GetTakenProviderIDs(ctx context.Context, date time.Time, slot domain.TimeSlot) ([]int64, error)
}

// SearchEngine чистая функция поиска по каталогу
type SearchEngine interface {
	Search(providers []*domain.Provider, filters domain.SearchFilters, isSlotTaken domain.SlotTakenFunc) domain.SearchResult
	Stages(filters domain.SearchFilters) []string
}

// TransactionManager каталог и занятость читаются на одном снимке
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder метрики поиска (опционально)
type MetricsRecorder interface {
	ObserveSearch(resultCount int, stages []string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
