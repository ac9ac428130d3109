package get_resource_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LacerdaAcacio/agendei-booking/internal/api/middleware"
	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations"
	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *MockService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}/reservations", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	userID, resourceID := uuid.New(), uuid.New()

	t.Run("all params", func(t *testing.T) {
		query := url.Values{
			"from":   {"2025-06-01T00:00:00Z"},
			"to":     {"2025-06-08T00:00:00-03:00"},
			"status": {"CANCELLED"},
		}

		req, err := ToServiceRequest(userID, resourceID, query)
		require.NoError(t, err)

		require.NotNil(t, req.From)
		require.NotNil(t, req.To)
		assert.True(t, req.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, req.To.Equal(time.Date(2025, 6, 8, 3, 0, 0, 0, time.UTC)))
		assert.Equal(t, "CANCELLED", *req.Status)
	})

	t.Run("no params", func(t *testing.T) {
		req, err := ToServiceRequest(userID, resourceID, url.Values{})
		require.NoError(t, err)

		assert.Nil(t, req.From)
		assert.Nil(t, req.To)
		assert.Nil(t, req.Status)
	})

	t.Run("bad time", func(t *testing.T) {
		_, err := ToServiceRequest(userID, resourceID, url.Values{"from": {"2025-06-01"}})
		assert.Error(t, err)
	})
}

func TestHandler_OK(t *testing.T) {
	svc := &MockService{}
	resourceID := uuid.New()

	svc.On("GetResourceReservations", mock.Anything, mock.MatchedBy(func(req *models.GetResourceReservationsRequest) bool {
		return req.ResourceID == resourceID
	})).Return(&models.ReservationListResponse{Reservations: []models.ReservationResponse{}}, nil)

	rec := serve(svc, "/api/v1/resources/"+resourceID.String()+"/reservations")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_BadWindowFormat(t *testing.T) {
	svc := &MockService{}

	rec := serve(svc, "/api/v1/resources/"+uuid.NewString()+"/reservations?to=tomorrow")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetResourceReservations", mock.Anything, mock.Anything)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"inverted window", reservations.ErrInvalidTimeRange, http.StatusBadRequest},
		{"invalid status", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"resource missing", reservations.ErrResourceNotFound, http.StatusNotFound},
		{"not owner", reservations.ErrAccessDenied, http.StatusForbidden},
		{"internal", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			svc.On("GetResourceReservations", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.want, serve(svc, "/api/v1/resources/"+uuid.NewString()+"/reservations").Code)
		})
	}
}
