package create_reservation

import (
	"fmt"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_reservation: %w", domain.ErrInvalidInput)

	// ErrInvalidRange возвращается, когда начало не раньше окончания
	ErrInvalidRange = fmt.Errorf("create_reservation: start must be before end: %w", domain.ErrInvalidRange)

	// ErrStartInPast возвращается, когда начало бронирования уже прошло
	ErrStartInPast = fmt.Errorf("create_reservation: start is in the past: %w", domain.ErrInvalidRange)

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = fmt.Errorf("create_reservation: resource: %w", domain.ErrNotFound)

	// ErrSelfBooking возвращается, когда владелец пытается забронировать свой ресурс
	ErrSelfBooking = fmt.Errorf("create_reservation: owner cannot book own resource: %w", domain.ErrForbidden)

	// ErrSlotConflict возвращается, когда интервал пересекается с подтверждённым бронированием
	ErrSlotConflict = fmt.Errorf("create_reservation: interval is already booked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_reservation: %w", domain.ErrInternal)
)
