package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// Request модель запроса на получение слотов мастера
type Request struct {
	ProviderID int64     // ID мастера
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	ProviderID int64
	Date       time.Time
	Slots      []domain.AvailableSlot // Все слоты сетки 09:00..19:00 с признаком доступности
}
