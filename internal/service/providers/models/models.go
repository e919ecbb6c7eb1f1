package models

import (
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// ServiceResponse услуга мастера
type ServiceResponse struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
}

// LocationResponse местоположение мастера
type LocationResponse struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

// ProviderResponse карточка мастера
type ProviderResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Specialization string            `json:"specialization"`
	Services       []ServiceResponse `json:"services"`
	Location       LocationResponse  `json:"location"`
	Description    string            `json:"description,omitempty"`
}

// FromDomainProvider конвертирует domain модель в DTO
func FromDomainProvider(p *domain.Provider) *ProviderResponse {
	if p == nil {
		return nil
	}

	services := make([]ServiceResponse, len(p.Services))
	for i, s := range p.Services {
		services[i] = ServiceResponse{
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &ProviderResponse{
		ID:             p.ID,
		Name:           p.Name,
		Specialization: string(p.Specialization),
		Services:       services,
		Location: LocationResponse{
			Lat:   p.Location.Lat,
			Lng:   p.Location.Lng,
			Label: p.LocationLabel,
		},
		Description: p.Description,
	}
}

// FromDomainProviderList конвертирует список мастеров, сохраняя порядок
func FromDomainProviderList(providers []*domain.Provider) []ProviderResponse {
	out := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		if resp := FromDomainProvider(p); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}
