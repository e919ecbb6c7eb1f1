package search_providers

import (
	"context"

	searchProviders "github.com/m04kA/SMC-BeautyBooking/internal/usecase/search_providers"
)

// SearchProvidersUseCase ищет мастеров по тексту, свободному слоту и расстоянию
type SearchProvidersUseCase interface {
	Execute(ctx context.Context, req *searchProviders.Request) (*searchProviders.Response, error)
}

// Logger пишет access-события обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
