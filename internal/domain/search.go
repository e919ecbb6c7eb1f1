package domain

// SearchFilters параметры поиска мастеров.
// Пустые поля означают, что соответствующая стадия не применяется.
type SearchFilters struct {
	Query        string
	Date         string // YYYY-MM-DD, учитывается только вместе с Time
	Time         string // HH:MM, учитывается только вместе с Date
	RequesterLat *float64
	RequesterLng *float64
}

// HasAvailability returns true if both date and time are set
func (f SearchFilters) HasAvailability() bool {
	return f.Date != "" && f.Time != ""
}

// HasRequesterPosition returns true if both coordinates are set
func (f SearchFilters) HasRequesterPosition() bool {
	return f.RequesterLat != nil && f.RequesterLng != nil
}

// SlotTakenFunc сообщает, занят ли слот мастера подтвержденной записью
type SlotTakenFunc func(providerID int64, date, timeSlot string) bool

// SearchResult результат поиска
type SearchResult struct {
	Providers  []*Provider
	TotalCount int
	Query      string // нормализованный запрос
}
