package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// BookingService отменяет подтвержденную запись от имени клиента или мастера
type BookingService interface {
	Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
