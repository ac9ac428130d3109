package reschedule_reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.ReservationID == uuid.Nil {
		return fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}

	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidRange,
			req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))
	}

	if req.StartAt.Before(now) {
		return fmt.Errorf("%w: start=%s now=%s", ErrStartInPast,
			req.StartAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	return nil
}

// validateReservation проверяет право на перенос и статус бронирования
func validateReservation(r *domain.Reservation, userID uuid.UUID) error {
	if r.ClientID != userID {
		return ErrNotClient
	}

	if !r.IsConfirmed() {
		return fmt.Errorf("%w: status=%s", ErrNotConfirmed, r.Status)
	}

	return nil
}
