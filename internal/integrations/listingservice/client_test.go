package listingservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testResourceID = uuid.MustParse("6b0f7a52-2f4e-4d8a-8f0e-1c2d3e4f5a6b")
	testOwnerID    = uuid.MustParse("0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d")
)

const resourceJSON = `{
	"id": "6b0f7a52-2f4e-4d8a-8f0e-1c2d3e4f5a6b",
	"ownerId": "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
	"title": "Studio",
	"durationMinutes": 60,
	"bufferMinutes": 15,
	"price": "100.00",
	"priceUnit": "DAILY",
	"availability": {
		"monday": {"active": true, "start": "09:00", "end": "18:00"},
		"sunday": {"active": false, "start": "00:00", "end": "00:00"}
	}
}`

func newTestClient(url string) *Client {
	return NewClient(url, time.Second, BreakerSettings{
		MaxFailures: 2,
		OpenTimeout: time.Minute,
		MaxRequests: 1,
	}, nopLogger{})
}

func TestClient_FindByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/resources/"+testResourceID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resourceJSON))
	}))
	defer server.Close()

	resource, err := newTestClient(server.URL).FindByID(context.Background(), testResourceID)
	require.NoError(t, err)

	assert.Equal(t, testResourceID, resource.ID)
	assert.Equal(t, testOwnerID, resource.OwnerID)
	assert.Equal(t, 60, resource.DurationMinutes)
	assert.Equal(t, 15, resource.BufferMinutes)
	assert.Equal(t, "100.00", resource.Price.StringFixed(2))
	assert.Equal(t, domain.PriceUnitDaily, resource.PriceUnit)

	monday := resource.Availability.For(time.Monday)
	assert.True(t, monday.Active)
	assert.Equal(t, "09:00", monday.Start.String())
	assert.Equal(t, "18:00", monday.End.String())

	assert.False(t, resource.Availability.For(time.Sunday).Active)
	assert.False(t, resource.Availability.For(time.Tuesday).Active)
}

func TestClient_FindByID_NotFoundDoesNotTripBreaker(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for i := 0; i < 5; i++ {
		_, err := client.FindByID(context.Background(), testResourceID)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestClient_FindByID_BreakerOpensOnFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FindByID(context.Background(), testResourceID)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	_, err = client.FindByID(context.Background(), testResourceID)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.FindByID(context.Background(), testResourceID)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_FindByID_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FindByID(context.Background(), testResourceID)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
