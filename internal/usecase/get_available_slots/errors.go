package get_available_slots

import (
	"fmt"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrInvalidInput)

	// ErrDateInPast возвращается, когда запрошенная дата уже прошла
	ErrDateInPast = fmt.Errorf("get_available_slots: date is in the past: %w", domain.ErrInvalidRange)

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("get_available_slots: resource: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_available_slots: %w", domain.ErrInternal)
)
