package reservations

import (
	"fmt"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reservation: %w", domain.ErrNotFound)

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("resource: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("access denied: %w", domain.ErrForbidden)

	// ErrAlreadyCompleted возвращается при отмене завершённого бронирования
	ErrAlreadyCompleted = fmt.Errorf("reservation is completed: %w", domain.ErrInvalidState)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("reservation is already cancelled: %w", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("service: %w", domain.ErrInvalidInput)

	// ErrInvalidTimeRange возвращается, когда from не раньше to
	ErrInvalidTimeRange = fmt.Errorf("invalid time range: %w", domain.ErrInvalidRange)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("service: %w", domain.ErrInternal)
)
