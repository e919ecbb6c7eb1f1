package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceName) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.TimeSlot.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, req.TimeSlot)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateBookingTime проверяет, что слот еще не начался
func validateBookingTime(date time.Time, slot domain.TimeSlot, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if !isSameDay(date, now) {
		return nil
	}

	start, err := slot.StartsAt(now)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve slot start: %v", ErrInternal, err)
	}
	if !start.After(now) {
		return ErrTooLateToBook
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
