package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate          = "нельзя получить слоты на прошедшую дату"
	msgProviderNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(providerID, dateStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/available-slots - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /providers/{id}/available-slots - Past date: provider_id=%d, date=%s", providerID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved successfully: provider_id=%d, date=%s",
		providerID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
