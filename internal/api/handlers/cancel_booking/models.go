package cancel_booking

import (
	"strings"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	var reason *string
	if r.CancellationReason != nil {
		if trimmed := strings.TrimSpace(*r.CancellationReason); trimmed != "" {
			reason = &trimmed
		}
	}

	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: reason,
	}
}
