package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID записи"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "запись не найдена"
	msgForbidden        = "запись доступна только клиенту и мастеру"
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

// Handle GET /api/v1/bookings/{bookingId}
// Запись видят клиент, который её создал, и владелец кабинета мастера.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		h.respondServiceError(w, err, bookingID, userID)
		return
	}

	h.logger.Info("GET /bookings/{id} - booking_id=%d, provider_id=%d, status=%s, viewer_id=%d",
		booking.ID, booking.ProviderID, booking.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, bookingID, userID int64) {
	if errors.Is(err, bookings.ErrBookingNotFound) {
		h.logger.Warn("GET /bookings/{id} - Not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}
	if errors.Is(err, bookings.ErrAccessDenied) {
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, viewer_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.logger.Error("GET /bookings/{id} - booking_id=%d: %v", bookingID, err)
	handlers.RespondInternalError(w)
}
