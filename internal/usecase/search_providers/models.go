package search_providers

import "github.com/m04kA/SMC-BeautyBooking/internal/domain"

// Request модель запроса поиска мастеров
type Request struct {
	Query string   // Свободный текст (опционально)
	Date  string   // Дата YYYY-MM-DD (опционально, обязательна при Time)
	Time  string   // Слот HH:MM (опционально)
	Lat   *float64 // Широта клиента (опционально, вместе с Lng)
	Lng   *float64 // Долгота клиента (опционально, вместе с Lat)
}

// Response результат поиска
type Response struct {
	Providers  []*domain.Provider // Отфильтрованные и упорядоченные мастера
	TotalCount int                // Количество найденных мастеров
	Query      string             // Нормализованный запрос
}
