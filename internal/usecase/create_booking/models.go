package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	UserID      int64           // ID клиента
	ProviderID  int64           // ID мастера
	ServiceName string          // Название услуги из списка мастера
	Date        time.Time       // Дата записи (без времени)
	TimeSlot    domain.TimeSlot // Слот, например "10:00"
	Notes       *string         // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	UserID          int64
	ProviderID      int64
	Date            time.Time
	TimeSlot        domain.TimeSlot
	Status          string
	DurationMinutes int

	// Денормализованные данные
	ProviderName string
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
