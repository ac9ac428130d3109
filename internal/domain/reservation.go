package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCompleted ReservationStatus = "COMPLETED"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Reservation бронирование ресурса клиентом
type Reservation struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	ClientID   uuid.UUID
	OwnerID    uuid.UUID // денормализуется из ресурса при создании
	StartAt    time.Time
	EndAt      time.Time
	Status     ReservationStatus

	TotalPrice    decimal.Decimal
	ServiceFee    decimal.Decimal
	OwnerEarnings decimal.Decimal

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал бронирования
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartAt, End: r.EndAt}
}

// IsConfirmed returns true if the reservation holds its interval
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsCompleted returns true if the reservation is finished
func (r *Reservation) IsCompleted() bool {
	return r.Status == StatusCompleted
}

// IsParticipant returns true if userID is the client or the owner
func (r *Reservation) IsParticipant(userID uuid.UUID) bool {
	return r.ClientID == userID || r.OwnerID == userID
}

// ApplyPricing переносит расчёт стоимости в бронирование
func (r *Reservation) ApplyPricing(p Pricing) {
	r.TotalPrice = p.TotalPrice
	r.ServiceFee = p.ServiceFee
	r.OwnerEarnings = p.OwnerEarnings
}

// ReservationFields изменяемые при переносе поля
type ReservationFields struct {
	StartAt       time.Time
	EndAt         time.Time
	TotalPrice    decimal.Decimal
	ServiceFee    decimal.Decimal
	OwnerEarnings decimal.Decimal
}

// ResourceReservationsFilter фильтр бронирований ресурса
type ResourceReservationsFilter struct {
	ResourceID uuid.UUID          // Обязательный параметр
	From       *time.Time         // Бронирования, заканчивающиеся после From (опционально)
	To         *time.Time         // Бронирования, начинающиеся до To (опционально)
	Status     *ReservationStatus // Фильтр по статусу (опционально)
}
