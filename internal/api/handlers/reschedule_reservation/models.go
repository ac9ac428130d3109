package reschedule_reservation

import (
	"time"

	"github.com/google/uuid"

	rescheduleReservation "github.com/LacerdaAcacio/agendei-booking/internal/usecase/reschedule_reservation"
)

// RescheduleReservationRequest HTTP request model
type RescheduleReservationRequest struct {
	StartAt time.Time `json:"startAt"` // RFC 3339
	EndAt   time.Time `json:"endAt"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	ResourceID    uuid.UUID `json:"resourceId"`
	ClientID      uuid.UUID `json:"clientId"`
	OwnerID       uuid.UUID `json:"ownerId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"totalPrice"`
	ServiceFee    string    `json:"serviceFee"`
	OwnerEarnings string    `json:"ownerEarnings"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleReservationRequest) ToUseCaseRequest(reservationID, userID uuid.UUID) *rescheduleReservation.Request {
	return &rescheduleReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		ResourceID:    resp.ResourceID,
		ClientID:      resp.ClientID,
		OwnerID:       resp.OwnerID,
		StartAt:       resp.StartAt.UTC(),
		EndAt:         resp.EndAt.UTC(),
		Status:        resp.Status,
		TotalPrice:    resp.TotalPrice.StringFixed(2),
		ServiceFee:    resp.ServiceFee.StringFixed(2),
		OwnerEarnings: resp.OwnerEarnings.StringFixed(2),
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}
