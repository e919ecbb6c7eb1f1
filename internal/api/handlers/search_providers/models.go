package search_providers

import (
	"fmt"
	"net/url"
	"strconv"

	providerModels "github.com/m04kA/SMC-BeautyBooking/internal/service/providers/models"
	searchProviders "github.com/m04kA/SMC-BeautyBooking/internal/usecase/search_providers"
)

// SearchResponse HTTP response model
type SearchResponse struct {
	Providers  []providerModels.ProviderResponse `json:"providers"`
	TotalCount int                               `json:"totalCount"`
	Query      string                            `json:"query"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// Форматы даты и времени проверяет use case, здесь только разбор координат
func ToUseCaseRequest(q url.Values) (*searchProviders.Request, error) {
	req := &searchProviders.Request{
		Query: q.Get("q"),
		Date:  q.Get("date"),
		Time:  q.Get("time"),
	}

	lat, err := parseOptionalFloat(q.Get("lat"))
	if err != nil {
		return nil, fmt.Errorf("lat: %w", err)
	}
	lng, err := parseOptionalFloat(q.Get("lng"))
	if err != nil {
		return nil, fmt.Errorf("lng: %w", err)
	}
	req.Lat = lat
	req.Lng = lng

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchProviders.Response) *SearchResponse {
	return &SearchResponse{
		Providers:  providerModels.FromDomainProviderList(resp.Providers),
		TotalCount: resp.TotalCount,
		Query:      resp.Query,
	}
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
