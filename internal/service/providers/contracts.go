package providers

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// ProviderRepository интерфейс каталога мастеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
