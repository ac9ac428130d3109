package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	reservationRepo "github.com/LacerdaAcacio/agendei-booking/internal/infra/storage/reservation"
)

// memoryRepository хранит бронирования в памяти
type memoryRepository struct {
	items map[uuid.UUID]*domain.Reservation
	err   error

	lastClientStatus *domain.ReservationStatus
	lastFilter       *domain.ResourceReservationsFilter
}

func newMemoryRepository(items ...*domain.Reservation) *memoryRepository {
	repo := &memoryRepository{items: make(map[uuid.UUID]*domain.Reservation)}
	for _, r := range items {
		repo.items[r.ID] = r
	}
	return repo
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	if r.err != nil {
		return nil, r.err
	}
	item, ok := r.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *memoryRepository) GetByClientID(_ context.Context, clientID uuid.UUID, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	r.lastClientStatus = status
	var out []*domain.Reservation
	for _, item := range r.items {
		if item.ClientID == clientID && (status == nil || item.Status == *status) {
			out = append(out, item)
		}
	}
	return out, r.err
}

func (r *memoryRepository) GetByResourceWithFilter(_ context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	r.lastFilter = &filter
	var out []*domain.Reservation
	for _, item := range r.items {
		if item.ResourceID == filter.ResourceID {
			out = append(out, item)
		}
	}
	return out, r.err
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ReservationStatus, reason *string) (*domain.Reservation, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	item.Status = status
	if status == domain.StatusCancelled {
		now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		item.CancellationReason = reason
		item.CancelledAt = &now
	}
	copied := *item
	return &copied, nil
}

type MockResourceClient struct {
	mock.Mock
}

func (m *MockResourceClient) FindByID(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

type MockBusyCache struct {
	mock.Mock
}

func (m *MockBusyCache) Invalidate(ctx context.Context, resourceID uuid.UUID, dates ...time.Time) error {
	args := m.Called(ctx, resourceID, dates)
	return args.Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordedMetrics struct {
	results []string
}

func (m *recordedMetrics) RecordReservation(operation, result string) {
	m.results = append(m.results, operation+":"+result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
