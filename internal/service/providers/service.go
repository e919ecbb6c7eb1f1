package providers

import (
	"context"
	"errors"
	"fmt"

	providerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/providers/models"
)

// Service сервис карточек мастеров
type Service struct {
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// GetByID возвращает карточку мастера со списком услуг
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error) {
	s.logger.Info("GetByID: fetching provider id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetByID: provider id=%d not found", id)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetByID: repository error for provider id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProvider(provider), nil
}
