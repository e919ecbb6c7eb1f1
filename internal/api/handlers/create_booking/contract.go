package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
)

// CreateBookingUseCase записывает клиента к мастеру на часовой слот
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
