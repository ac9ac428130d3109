package get_available_slots

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

func (m *MockReservationRepository) FindConfirmedOnDate(ctx context.Context, resourceID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.Interval, error) {
	args := m.Called(ctx, resourceID, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interval), args.Error(1)
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

func (m *MockBusyCache) Get(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.Interval, int64, bool, error) {
	args := m.Called(ctx, resourceID, date)
	var intervals []domain.Interval
	if v := args.Get(0); v != nil {
		intervals = v.([]domain.Interval)
	}
	return intervals, args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockBusyCache) Set(ctx context.Context, resourceID uuid.UUID, date time.Time, version int64, intervals []domain.Interval) error {
	args := m.Called(ctx, resourceID, date, version, intervals)
	return args.Error(0)
}

type countingMetrics struct {
	slots int
}

func (m *countingMetrics) RecordSlots(count int) {
	m.slots += count
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
