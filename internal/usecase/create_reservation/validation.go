package create_reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidRange,
			req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))
	}

	return nil
}

// validateNotInPast проверяет, что бронирование начинается не раньше текущего момента
func validateNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return fmt.Errorf("%w: start=%s now=%s", ErrStartInPast,
			start.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	return nil
}
