package get_provider_bookings

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// BookingService отдает расписание мастера его владельцу
type BookingService interface {
	GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
