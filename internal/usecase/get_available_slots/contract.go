package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// FindConfirmedOnDate получает интервалы подтверждённых бронирований, задевающих окно дня
	FindConfirmedOnDate(ctx context.Context, resourceID uuid.UUID, dayStart, dayEnd time.Time) ([]domain.Interval, error)
}

// ResourceClient интерфейс клиента сервиса объявлений
type ResourceClient interface {
	FindByID(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error)
}

// BusyCache интерфейс кэша занятых интервалов.
// Get отдаёт версию дня, Set пишет только при неизменной версии.
type BusyCache interface {
	Get(ctx context.Context, resourceID uuid.UUID, date time.Time) (intervals []domain.Interval, version int64, found bool, err error)
	Set(ctx context.Context, resourceID uuid.UUID, date time.Time, version int64, intervals []domain.Interval) error
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordSlots(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
