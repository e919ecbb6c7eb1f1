package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, booking), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) IsSlotTaken(ctx context.Context, providerID int64, date time.Time, slot domain.TimeSlot) (bool, error) {
	args := m.Called(ctx, providerID, date, slot)
	return args.Bool(0), args.Error(1)
}

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

// passThroughTx выполняет функцию без реальной транзакции
type passThroughTx struct {
	calls int
}

func (p *passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	testNow  = time.Date(2025, 9, 30, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
)

func testProvider() *domain.Provider {
	return &domain.Provider{
		ID:   3,
		Name: "Олена",
		Services: []domain.ProviderService{
			{Name: "Класичний манікюр", Price: 450, DurationMinutes: 90},
			{Name: "Зняття покриття", Price: 150},
		},
	}
}

func newUseCase(bookings *mockBookingRepo, providers *mockProviderRepo, tx *passThroughTx) *UseCase {
	uc := NewUseCase(bookings, providers, tx, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	notes := "Без гель-лаку"
	return &Request{
		UserID:      42,
		ProviderID:  3,
		ServiceName: "класичний манікюр",
		Date:        testDate,
		TimeSlot:    "13:00",
		Notes:       &notes,
	}
}

func TestExecute_Success(t *testing.T) {
	ctx := context.Background()
	bookings := new(mockBookingRepo)
	providers := new(mockProviderRepo)
	tx := &passThroughTx{}

	providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)
	bookings.On("IsSlotTaken", ctx, int64(3), testDate, domain.TimeSlot("13:00")).Return(false, nil)
	bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == 42 &&
			b.Status == domain.StatusConfirmed &&
			b.ProviderName == "Олена" &&
			b.ServiceName == "Класичний манікюр" &&
			b.ServicePrice == 450 &&
			b.DurationMinutes == 90
	})).Return(func(_ context.Context, b *domain.Booking) *domain.Booking {
		b.ID = 100
		return b
	}, nil)

	resp, err := newUseCase(bookings, providers, tx).Execute(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.TimeSlot("13:00"), resp.TimeSlot)
	assert.Equal(t, 1, tx.calls)

	providers.AssertExpectations(t)
	bookings.AssertExpectations(t)
}

func TestExecute_DefaultDuration(t *testing.T) {
	ctx := context.Background()
	bookings := new(mockBookingRepo)
	providers := new(mockProviderRepo)

	providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)
	bookings.On("IsSlotTaken", ctx, int64(3), testDate, domain.TimeSlot("13:00")).Return(false, nil)
	bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.DurationMinutes == domain.DefaultSlotDurationMinutes
	})).Return(&domain.Booking{ID: 5, Status: domain.StatusConfirmed}, nil)

	req := validRequest()
	req.ServiceName = "Зняття покриття"

	_, err := newUseCase(bookings, providers, &passThroughTx{}).Execute(ctx, req)
	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestExecute_SlotTaken(t *testing.T) {
	ctx := context.Background()
	bookings := new(mockBookingRepo)
	providers := new(mockProviderRepo)

	providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)
	bookings.On("IsSlotTaken", ctx, int64(3), testDate, domain.TimeSlot("13:00")).Return(true, nil)

	_, err := newUseCase(bookings, providers, &passThroughTx{}).Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ConcurrentInsertLosesRace(t *testing.T) {
	ctx := context.Background()
	bookings := new(mockBookingRepo)
	providers := new(mockProviderRepo)

	providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)
	bookings.On("IsSlotTaken", ctx, int64(3), testDate, domain.TimeSlot("13:00")).Return(false, nil)
	bookings.On("Create", ctx, mock.Anything).Return(nil, bookingRepo.ErrSlotNotAvailable)

	_, err := newUseCase(bookings, providers, &passThroughTx{}).Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ProviderErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		providers := new(mockProviderRepo)
		providers.On("GetByID", ctx, int64(3)).Return(nil, providerRepo.ErrProviderNotFound)

		_, err := newUseCase(new(mockBookingRepo), providers, &passThroughTx{}).Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		providers := new(mockProviderRepo)
		providers.On("GetByID", ctx, int64(3)).Return(nil, errors.New("timeout"))

		_, err := newUseCase(new(mockBookingRepo), providers, &passThroughTx{}).Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("service not offered", func(t *testing.T) {
		providers := new(mockProviderRepo)
		providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)

		req := validRequest()
		req.ServiceName = "Нарощування вій"
		_, err := newUseCase(new(mockBookingRepo), providers, &passThroughTx{}).Execute(ctx, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"no user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"no provider", func(r *Request) { r.ProviderID = -1 }, ErrInvalidInput},
		{"blank service", func(r *Request) { r.ServiceName = "  " }, ErrInvalidInput},
		{"no date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"off-grid slot", func(r *Request) { r.TimeSlot = "13:30" }, ErrInvalidTimeSlot},
		{"late slot", func(r *Request) { r.TimeSlot = "20:00" }, ErrInvalidTimeSlot},
		{"long notes", func(r *Request) {
			long := strings.Repeat("ж", domain.MaxNotesLength+1)
			r.Notes = &long
		}, ErrInvalidInput},
		{"past date", func(r *Request) { r.Date = testDate.AddDate(0, 0, -2) }, ErrInvalidDate},
		{"started today", func(r *Request) {
			r.Date = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
			r.TimeSlot = "10:00"
		}, ErrTooLateToBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers := new(mockProviderRepo)
			req := validRequest()
			tt.modify(req)

			_, err := newUseCase(new(mockBookingRepo), providers, &passThroughTx{}).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			providers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_SerializationFailureOnCommit(t *testing.T) {
	ctx := context.Background()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	bookings := new(mockBookingRepo)
	providers := new(mockProviderRepo)

	providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)
	bookings.On("IsSlotTaken", mock.Anything, int64(3), testDate, domain.TimeSlot("13:00")).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 9, Status: domain.StatusConfirmed}, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"})

	txMgr := txmanager.NewTransactionManager(dbmetrics.Wrap(sqlDB, nil))
	uc := NewUseCase(bookings, providers, txMgr, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}

	_, err = uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestExecute_CommitFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	bookings := new(mockBookingRepo)
	providers := new(mockProviderRepo)

	providers.On("GetByID", ctx, int64(3)).Return(testProvider(), nil)
	bookings.On("IsSlotTaken", mock.Anything, int64(3), testDate, domain.TimeSlot("13:00")).Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 9, Status: domain.StatusConfirmed}, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit().WillReturnError(errors.New("connection reset by peer"))

	uc := NewUseCase(bookings, providers, txmanager.NewTransactionManager(dbmetrics.Wrap(sqlDB, nil)), logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}

	_, err = uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
