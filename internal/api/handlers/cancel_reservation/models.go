package cancel_reservation

import (
	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model. Тело запроса необязательно.
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(userID uuid.UUID) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
