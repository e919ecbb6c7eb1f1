package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true if the status is known
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CancelledBy сторона, отменившая запись
type CancelledBy string

const (
	CancelledByClient   CancelledBy = "client"
	CancelledByProvider CancelledBy = "provider"
)

// Booking represents a client's appointment with a provider
type Booking struct {
	ID         int64
	UserID     int64
	ProviderID int64
	Date       time.Time
	TimeSlot   TimeSlot
	Status     BookingStatus

	// Denormalized data for history
	ProviderName    string
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	Notes           *string

	CancelledBy        *CancelledBy
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking blocks its (provider, date, time) slot
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// ProviderBookingsFilter фильтр для кабинета мастера
type ProviderBookingsFilter struct {
	ProviderID int64          // Обязательный параметр
	Date       *time.Time     // Конкретная дата (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
}
