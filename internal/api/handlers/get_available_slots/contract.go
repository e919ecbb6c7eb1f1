package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_available_slots"
)

// GetAvailableSlotsUseCase строит сетку слотов мастера на дату
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
