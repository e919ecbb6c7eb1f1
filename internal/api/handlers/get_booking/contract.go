package get_booking

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// BookingService отдает запись, если зритель клиент или владелец мастера
type BookingService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
