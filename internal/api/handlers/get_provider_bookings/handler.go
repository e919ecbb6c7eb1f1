package get_provider_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgForbidden         = "доступ запрещен"
	msgProviderNotFound  = "мастер не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/bookings
// Query params: date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/bookings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(providerID, userID, r.URL.Query().Get("status"), r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что пользователь владеет кабинетом
	result, err := h.service.GetProviderBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/bookings - Access denied: provider_id=%d, user_id=%d",
				providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/bookings - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/bookings - Failed to get bookings: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/bookings - Bookings retrieved successfully: provider_id=%d, count=%d",
		providerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
