package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	ProviderID int64           `json:"providerId"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.TimeSlot.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ProviderID: resp.ProviderID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(providerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: providerID,
		Date:       date,
	}, nil
}
