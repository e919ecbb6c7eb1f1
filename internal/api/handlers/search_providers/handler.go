package search_providers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	searchProviders "github.com/m04kA/SMC-BeautyBooking/internal/usecase/search_providers"
)

const (
	msgInvalidCoordinates = "некорректные координаты"
	msgInvalidParams      = "некорректные параметры поиска"
)

type Handler struct {
	useCase SearchProvidersUseCase
	logger  Logger
}

func NewHandler(useCase SearchProvidersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/search
// Query params: q, date (YYYY-MM-DD), time (HH:MM), lat, lng (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /providers/search - Invalid coordinates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchProviders.ErrInvalidInput):
			h.logger.Warn("GET /providers/search - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/search - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/search - Search completed: query=%q, count=%d", result.Query, result.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
