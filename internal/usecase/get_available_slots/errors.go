package get_available_slots

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("get_available_slots: provider not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
