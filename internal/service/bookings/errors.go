package bookings

import "errors"

var (
	ErrBookingNotFound  = errors.New("bookings: booking not found")
	ErrProviderNotFound = errors.New("bookings: provider not found")

	// ErrAccessDenied пользователь не клиент записи и не владелец мастера
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel запись уже не в статусе confirmed
	ErrCannotCancel = errors.New("bookings: only confirmed bookings can be cancelled")

	ErrInvalidInput = errors.New("bookings: invalid input")
	ErrInternal     = errors.New("bookings: internal error")
)
