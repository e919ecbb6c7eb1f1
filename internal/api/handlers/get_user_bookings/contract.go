package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// BookingService отдает записи клиента для его кабинета
type BookingService interface {
	GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
