package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID  int64   `json:"providerId"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ProviderID      int64   `json:"providerId"`
	ProviderName    string  `json:"providerName"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Принадлежность времени к сетке слотов проверяет use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		ProviderID:  r.ProviderID,
		ServiceName: r.ServiceName,
		Date:        date,
		TimeSlot:    domain.TimeSlot(r.Time),
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ProviderID:      resp.ProviderID,
		ProviderName:    resp.ProviderName,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.TimeSlot.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
