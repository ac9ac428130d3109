package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByResourceWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus, reason *string) (*domain.Reservation, error)
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordReservation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
