package bookings

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, by domain.CancelledBy, reason *string) error
}

// ProviderRepository нужен для проверки владельца кабинета мастера
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
