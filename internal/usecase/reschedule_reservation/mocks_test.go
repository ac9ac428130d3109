package reschedule_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindConfirmedOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, resourceID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields domain.ReservationFields) (*domain.Reservation, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
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

type inTxKey struct{}

// inlineTx выполняет fn сразу, помечая контекст как транзакционный
type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

func inTx(ctx context.Context) bool {
	return ctx.Value(inTxKey{}) != nil
}

type recordedMetrics struct {
	results []string
}

func (m *recordedMetrics) RecordReservation(operation, result string) {
	m.results = append(m.results, operation+":"+result)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
