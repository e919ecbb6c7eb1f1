package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{"providerId":3,"serviceName":"Класичний манікюр","date":"2025-10-01","time":"13:00"}`

func serve(uc CreateBookingUseCase, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &createBooking.Request{
		UserID:      42,
		ProviderID:  3,
		ServiceName: "Класичний манікюр",
		Date:        date,
		TimeSlot:    "13:00",
	}).Return(&createBooking.Response{
		ID:           100,
		UserID:       42,
		ProviderID:   3,
		ProviderName: "Олена",
		Date:         date,
		TimeSlot:     "13:00",
		Status:       string(domain.StatusConfirmed),
		ServiceName:  "Класичний манікюр",
		ServicePrice: 450,
	}, nil)

	rec := serve(uc, validBody, 42)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, "13:00", body.Time)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		userID   int64
		ucErr    error
		wantCode int
	}{
		{"no user", validBody, 0, nil, http.StatusUnauthorized},
		{"broken json", `{"providerId":`, 42, nil, http.StatusBadRequest},
		{"bad date", `{"providerId":3,"serviceName":"x","date":"1 Oct","time":"13:00"}`, 42, nil, http.StatusBadRequest},
		{"slot taken", validBody, 42, createBooking.ErrSlotTaken, http.StatusConflict},
		{"provider not found", validBody, 42, createBooking.ErrProviderNotFound, http.StatusNotFound},
		{"service not found", validBody, 42, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"invalid slot", validBody, 42, createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"too late", validBody, 42, createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{"internal", validBody, 42, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			assert.Equal(t, tt.wantCode, serve(uc, tt.body, tt.userID).Code)
		})
	}
}
