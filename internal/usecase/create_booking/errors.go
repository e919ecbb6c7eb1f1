package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrServiceNotFound возвращается, когда мастер не оказывает указанную услугу
	ErrServiceNotFound = errors.New("create_booking: service not offered by provider")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот сегодня уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotTaken возвращается, когда на слот уже есть подтвержденная запись
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
