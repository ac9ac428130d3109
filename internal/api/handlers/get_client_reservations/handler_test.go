package get_client_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LacerdaAcacio/agendei-booking/internal/api/middleware"
	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations"
	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
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

func serve(svc *MockService, userID uuid.UUID, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/users/{userId}/reservations", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PassesStatusFilter(t *testing.T) {
	svc := &MockService{}
	userID := uuid.New()

	svc.On("GetClientReservations", mock.Anything, mock.MatchedBy(func(req *models.GetClientReservationsRequest) bool {
		return req.UserID == userID && req.ClientID == userID && req.Status != nil && *req.Status == "CONFIRMED"
	})).Return(&models.ReservationListResponse{Reservations: []models.ReservationResponse{}}, nil)

	rec := serve(svc, userID, "/api/v1/users/"+userID.String()+"/reservations?status=CONFIRMED")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reservations":[]}`, rec.Body.String())
}

func TestHandler_NoStatus(t *testing.T) {
	svc := &MockService{}
	userID := uuid.New()

	svc.On("GetClientReservations", mock.Anything, mock.MatchedBy(func(req *models.GetClientReservationsRequest) bool {
		return req.Status == nil
	})).Return(&models.ReservationListResponse{}, nil)

	assert.Equal(t, http.StatusOK, serve(svc, userID, "/api/v1/users/"+userID.String()+"/reservations").Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid status", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"other user", reservations.ErrAccessDenied, http.StatusForbidden},
		{"internal", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			svc.On("GetClientReservations", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(svc, uuid.New(), "/api/v1/users/"+uuid.NewString()+"/reservations")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
