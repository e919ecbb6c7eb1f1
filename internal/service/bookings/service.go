package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть запись может клиент, который её создал, или владелец кабинета мастера
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		if err := s.checkOwnerAccess(ctx, booking.ProviderID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, accessError(err)
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает записи клиента, опционально по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает записи мастера для его кабинета
// Доступно только владельцу кабинета
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderBookings: fetching bookings for provider=%d, user=%d", req.ProviderID, req.UserID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if err := s.checkOwnerAccess(ctx, req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент отменяет свою запись (cancelled_by=client), владелец кабинета мастера любую запись мастера (cancelled_by=provider)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	var by domain.CancelledBy
	if booking.UserID == req.UserID {
		by = domain.CancelledByClient
	} else {
		if err := s.checkOwnerAccess(ctx, booking.ProviderID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return accessError(err)
		}
		by = domain.CancelledByProvider
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, by, req.CancellationReason); err != nil {
		// Запись отменили между чтением и обновлением
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d is no longer confirmed", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s", bookingID, by)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkOwnerAccess проверяет, что пользователь владеет кабинетом мастера
func (s *Service) checkOwnerAccess(ctx context.Context, providerID int64, userID int64) error {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("checkOwnerAccess: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of provider=%d", userID, providerID)
		return ErrAccessDenied
	}

	return nil
}

// accessError скрывает отсутствие мастера за отказом в доступе, внутренние ошибки пробрасывает
func accessError(err error) error {
	if errors.Is(err, ErrInternal) {
		return err
	}
	return ErrAccessDenied
}
