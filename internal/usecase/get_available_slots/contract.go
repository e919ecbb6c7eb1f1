package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// ProviderRepository интерфейс каталога мастеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetTakenSlots занятые слоты мастера на дату
	GetTakenSlots(ctx context.Context, providerID int64, date time.Time) ([]domain.TimeSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
