package search_providers

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/geo"
)

// validateRequest строгая проверка формата фильтров.
// Сам движок поиска терпим к неполным фильтрам, но API их отклоняет.
func validateRequest(req *Request) error {
	if utf8.RuneCountInString(req.Query) > domain.MaxSearchQueryLength {
		return fmt.Errorf("%w: query must be at most %d characters", ErrInvalidInput, domain.MaxSearchQueryLength)
	}

	if req.Time != "" && req.Date == "" {
		return fmt.Errorf("%w: date is required when time is set", ErrInvalidInput)
	}

	if req.Date != "" {
		if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	if req.Time != "" {
		if _, err := domain.ParseTimeSlot(req.Time); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be set together", ErrInvalidInput)
	}

	if req.Lat != nil && !(geo.Point{Lat: *req.Lat, Lng: *req.Lng}).IsValid() {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	return nil
}
