package get_provider

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/providers/models"
)

// ProviderService отдает карточку мастера с услугами
type ProviderService interface {
	GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
