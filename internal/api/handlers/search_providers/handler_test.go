package search_providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	searchProviders "github.com/m04kA/SMC-BeautyBooking/internal/usecase/search_providers"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *searchProviders.Request) (*searchProviders.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*searchProviders.Response), args.Error(1)
}

func TestHandle_Success(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *searchProviders.Request) bool {
		return r.Query == "манікюр" && r.Date == "2025-10-01" && r.Time == "13:00" &&
			r.Lat != nil && *r.Lat == 50.45 && r.Lng != nil && *r.Lng == 30.52
	})).Return(&searchProviders.Response{
		Providers: []*domain.Provider{
			{ID: 1, Name: "Олена", Specialization: domain.SpecializationManicure,
				Services: []domain.ProviderService{{Name: "Класичний манікюр", Price: 450}}},
		},
		TotalCount: 1,
		Query:      "манікюр",
	}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/providers/search?q=%D0%BC%D0%B0%D0%BD%D1%96%D0%BA%D1%8E%D1%80&date=2025-10-01&time=13:00&lat=50.45&lng=30.52", nil)
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TotalCount)
	assert.Equal(t, "манікюр", body.Query)
	require.Len(t, body.Providers, 1)
	assert.Equal(t, "manicure", body.Providers[0].Specialization)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyResultIsArray(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&searchProviders.Response{}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/search?q=xyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"providers":[],"totalCount":0,"query":""}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		ucErr    error
		wantCode int
	}{
		{"bad lat", "lat=north&lng=30", nil, http.StatusBadRequest},
		{"invalid input", "time=13:00", fmt.Errorf("%w: time requires date", searchProviders.ErrInvalidInput), http.StatusBadRequest},
		{"internal", "q=a", fmt.Errorf("%w: %v", searchProviders.ErrInternal, errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/search?"+tt.query, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
