package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не раньше сегодняшней (в loc)
func validateDate(date, now time.Time, loc *time.Location) error {
	today, _ := domain.DayBounds(now, loc)
	if date.Before(today) {
		return fmt.Errorf("%w: date=%s today=%s", ErrDateInPast,
			date.Format(domain.DateFormat), today.Format(domain.DateFormat))
	}
	return nil
}

// normalizeDate переносит календарную дату запроса в loc на полночь
func normalizeDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
