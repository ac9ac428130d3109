package reschedule_reservation

import (
	"fmt"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_reservation: %w", domain.ErrInvalidInput)

	// ErrInvalidRange возвращается, когда новое начало не раньше нового окончания
	ErrInvalidRange = fmt.Errorf("reschedule_reservation: start must be before end: %w", domain.ErrInvalidRange)

	// ErrStartInPast возвращается, когда новое начало уже прошло
	ErrStartInPast = fmt.Errorf("reschedule_reservation: start is in the past: %w", domain.ErrInvalidRange)

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reschedule_reservation: reservation: %w", domain.ErrNotFound)

	// ErrResourceNotFound возвращается, когда ресурс бронирования больше не существует
	ErrResourceNotFound = fmt.Errorf("reschedule_reservation: resource: %w", domain.ErrNotFound)

	// ErrNotClient возвращается, когда перенос запрашивает не клиент бронирования
	ErrNotClient = fmt.Errorf("reschedule_reservation: only the client can reschedule: %w", domain.ErrForbidden)

	// ErrNotConfirmed возвращается, когда бронирование отменено или завершено
	ErrNotConfirmed = fmt.Errorf("reschedule_reservation: reservation is not confirmed: %w", domain.ErrInvalidState)

	// ErrSlotConflict возвращается, когда новый интервал пересекается с другим подтверждённым бронированием
	ErrSlotConflict = fmt.Errorf("reschedule_reservation: interval is already booked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reschedule_reservation: %w", domain.ErrInternal)
)
