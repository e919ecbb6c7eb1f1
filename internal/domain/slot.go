package domain

import (
	"fmt"
	"time"
)

// TimeSlot часовой слот записи в формате HH:MM
type TimeSlot string

// TimeSlots фиксированная сетка слотов рабочего дня
var TimeSlots = []TimeSlot{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00",
}

// ParseTimeSlot проверяет, что строка входит в сетку слотов
func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(s)
	if !slot.IsValid() {
		return "", fmt.Errorf("unknown time slot %q", s)
	}
	return slot, nil
}

// IsValid returns true if the slot belongs to the fixed enumeration
func (t TimeSlot) IsValid() bool {
	for _, s := range TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}

func (t TimeSlot) String() string {
	return string(t)
}

// StartsAt момент начала слота в указанную дату (в часовом поясе даты)
func (t TimeSlot) StartsAt(date time.Time) (time.Time, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// AvailableSlot слот с признаком доступности для записи
type AvailableSlot struct {
	TimeSlot  TimeSlot
	Available bool
}
