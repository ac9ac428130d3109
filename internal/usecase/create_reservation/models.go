package create_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID   uuid.UUID // Кто бронирует (из заголовка X-User-ID)
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
}

// Response модель ответа с созданным бронированием
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
