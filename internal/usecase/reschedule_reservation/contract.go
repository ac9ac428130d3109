package reschedule_reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	FindConfirmedOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*domain.Reservation, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields domain.ReservationFields) (*domain.Reservation, error)
}

// ResourceClient интерфейс клиента сервиса объявлений
type ResourceClient interface {
	FindByID(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error)
}

// BusyCache интерфейс кэша занятых интервалов
type BusyCache interface {
	Invalidate(ctx context.Context, resourceID uuid.UUID, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordReservation(operation, result string)
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
