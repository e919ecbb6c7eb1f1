package booking

import "errors"

var (
	// ErrBookingNotFound записи с таким id нет, либо она уже не confirmed (для Cancel)
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable сработал уникальный индекс по (provider_id, booking_date, time_slot)
	// или сериализуемая транзакция проиграла конкурентной записи
	ErrSlotNotAvailable = errors.New("booking.repository: slot already confirmed")

	ErrBuildQuery = errors.New("booking.repository: failed to build query")
	ErrExecQuery  = errors.New("booking.repository: failed to execute query")
	ErrScanRow    = errors.New("booking.repository: failed to scan row")
)
