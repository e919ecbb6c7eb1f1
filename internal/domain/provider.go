package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/geo"
)

// Specialization направление мастера
type Specialization string

const (
	SpecializationManicure Specialization = "manicure"
	SpecializationBrows    Specialization = "brows"
	SpecializationLashes   Specialization = "lashes"
	SpecializationPedicure Specialization = "pedicure"
)

// Specializations все поддерживаемые направления
var Specializations = []Specialization{
	SpecializationManicure,
	SpecializationBrows,
	SpecializationLashes,
	SpecializationPedicure,
}

// IsValid returns true if the specialization is one of the known tags
func (s Specialization) IsValid() bool {
	for _, known := range Specializations {
		if s == known {
			return true
		}
	}
	return false
}

// ProviderService услуга, которую оказывает мастер
type ProviderService struct {
	Name            string
	Price           float64
	DurationMinutes int
}

// Provider represents a beauty-service provider (мастер) in the catalog
type Provider struct {
	ID             int64
	OwnerUserID    int64 // аккаунт мастера, имеет доступ к кабинету
	Name           string
	Specialization Specialization
	Services       []ProviderService
	Location       geo.Point
	LocationLabel  string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ServiceNames returns the names of all offered services
func (p *Provider) ServiceNames() []string {
	names := make([]string, len(p.Services))
	for i, s := range p.Services {
		names[i] = s.Name
	}
	return names
}

// FindService ищет услугу по названию без учета регистра и пробелов по краям
func (p *Provider) FindService(name string) (ProviderService, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, s := range p.Services {
		if strings.ToLower(strings.TrimSpace(s.Name)) == needle {
			return s, true
		}
	}
	return ProviderService{}, false
}

// IsOwnedBy returns true if the user manages this provider's dashboard
func (p *Provider) IsOwnedBy(userID int64) bool {
	return p.OwnerUserID != 0 && p.OwnerUserID == userID
}
