package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	getAvailableSlots "github.com/LacerdaAcacio/agendei-booking/internal/usecase/get_available_slots"
	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

var brt = time.FixedZone("BRT", -3*60*60)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *MockUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}/available-slots", NewHandler(uc, brt, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &MockUseCase{}
	resourceID := uuid.New()
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, brt)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.ResourceID == resourceID && req.Date.Equal(day)
	})).Return(&getAvailableSlots.Response{
		Date:            day,
		ResourceID:      resourceID,
		DurationMinutes: 60,
		BufferMinutes:   15,
		Slots:           []types.TimeString{"09:00", "10:15"},
	}, nil)

	rec := serve(uc, "/api/v1/resources/"+resourceID.String()+"/available-slots?date=2025-06-11")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"date": "2025-06-11",
		"resourceId": "`+resourceID.String()+`",
		"durationMinutes": 60,
		"bufferMinutes": 15,
		"slots": ["09:00", "10:15"]
	}`, rec.Body.String())
}

func TestHandler_EmptySlotsIsArray(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{
		Date: time.Date(2025, 6, 15, 0, 0, 0, 0, brt),
	}, nil)

	rec := serve(uc, "/api/v1/resources/"+uuid.NewString()+"/available-slots?date=2025-06-15")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"invalid resource id", "/api/v1/resources/7/available-slots?date=2025-06-11"},
		{"missing date", "/api/v1/resources/" + uuid.NewString() + "/available-slots"},
		{"invalid date", "/api/v1/resources/" + uuid.NewString() + "/available-slots?date=11.06.2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockUseCase{}

			assert.Equal(t, http.StatusBadRequest, serve(uc, tt.target).Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		message string
	}{
		{"past date", getAvailableSlots.ErrDateInPast, http.StatusBadRequest, msgDateInPast},
		{"invalid input", getAvailableSlots.ErrInvalidInput, http.StatusBadRequest, msgInvalidRequest},
		{"resource missing", getAvailableSlots.ErrResourceNotFound, http.StatusNotFound, msgResourceNotFound},
		{"internal", getAvailableSlots.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, "/api/v1/resources/"+uuid.NewString()+"/available-slots?date=2025-06-11")
			assert.Equal(t, tt.want, rec.Code)
			if tt.message != "" {
				assert.Contains(t, rec.Body.String(), tt.message)
			}
		})
	}
}
