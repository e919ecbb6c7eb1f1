package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotTaken          = "выбранное время уже занято"
	msgProviderNotFound   = "мастер не найден"
	msgServiceNotFound    = "мастер не оказывает эту услугу"
	msgInvalidBookingDate = "нельзя записаться на прошедшую дату"
	msgInvalidTimeSlot    = "некорректное время, доступны слоты с 09:00 до 19:00"
	msgTooLateToBook      = "это время уже прошло"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, provider_id=%d, date=%s, time=%s",
				userID, req.ProviderID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: provider_id=%d, service=%q", req.ProviderID, req.ServiceName)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Past date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, time=%s", userID, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, date=%s, time=%s", userID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, provider_id=%d, error=%v",
				userID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, provider_id=%d",
		result.ID, userID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
