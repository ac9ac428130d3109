package reschedule_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ReservationID uuid.UUID
	UserID        uuid.UUID // Кто переносит (из заголовка X-User-ID)
	StartAt       time.Time
	EndAt         time.Time
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID            uuid.UUID
	ResourceID    uuid.UUID
	ClientID      uuid.UUID
	OwnerID       uuid.UUID
	StartAt       time.Time
	EndAt         time.Time
	Status        string
	TotalPrice    decimal.Decimal
	ServiceFee    decimal.Decimal
	OwnerEarnings decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
