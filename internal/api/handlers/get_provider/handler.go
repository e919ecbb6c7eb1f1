package get_provider

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/providers"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgNotFound          = "мастер не найден"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	provider, err := h.service.GetByID(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id} - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /providers/{id} - Failed to get provider: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id} - Provider retrieved successfully: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, provider)
}
