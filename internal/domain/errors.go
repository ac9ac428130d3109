package domain

import "errors"

// Виды ошибок предметной области. Ошибки пакетов usecase/service оборачивают их через %w,
// HTTP слой определяет код ответа через errors.Is.
var (
	// ErrInvalidRange некорректный интервал: start >= end или start в прошлом
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidInput некорректные входные данные (пустые идентификаторы, формат)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound ресурс или бронирование не найдены
	ErrNotFound = errors.New("not found")

	// ErrForbidden у пользователя нет нужного отношения к ресурсу или бронированию
	ErrForbidden = errors.New("forbidden")

	// ErrConflict интервал пересекается с подтверждённым бронированием
	ErrConflict = errors.New("conflict")

	// ErrInvalidState операция недопустима в текущем статусе бронирования
	ErrInvalidState = errors.New("invalid state")

	// ErrInternal ошибка хранилища или внешнего сервиса
	ErrInternal = errors.New("internal error")
)

// IsRejection возвращает true, если операция отклонена бизнес-правилом, а не сбоем
func IsRejection(err error) bool {
	for _, kind := range []error{ErrInvalidInput, ErrInvalidRange, ErrNotFound, ErrForbidden, ErrConflict, ErrInvalidState} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
