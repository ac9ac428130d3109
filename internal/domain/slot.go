package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

var (
	// ErrInvalidSlotDuration возвращается при durationMinutes <= 0 (генерация не завершилась бы)
	ErrInvalidSlotDuration = errors.New("slot duration must be positive")

	// ErrInvalidBuffer возвращается при отрицательном буфере
	ErrInvalidBuffer = errors.New("slot buffer must not be negative")
)

// GenerateSlots возвращает свободные времена начала слотов на targetDate.
//
// Слоты строятся от day.Start с шагом duration+buffer, пока слот целиком помещается
// до day.End. Отбрасываются слоты, уже начавшиеся (только если targetDate сегодня),
// и слоты, пересекающиеся с busy. Расписание дня применяется в часовом поясе targetDate.
// Результат упорядочен по времени.
func GenerateSlots(
	day DaySchedule,
	durationMinutes int,
	bufferMinutes int,
	targetDate time.Time,
	busy []Interval,
	now time.Time,
) ([]types.TimeString, error) {
	if !day.Active {
		return []types.TimeString{}, nil
	}

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlotDuration, durationMinutes)
	}
	if bufferMinutes < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBuffer, bufferMinutes)
	}

	loc := targetDate.Location()

	cursor, err := day.Start.On(targetDate, loc)
	if err != nil {
		return nil, fmt.Errorf("day start: %w", err)
	}
	dayEnd, err := day.End.On(targetDate, loc)
	if err != nil {
		return nil, fmt.Errorf("day end: %w", err)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := duration + time.Duration(bufferMinutes)*time.Minute
	today := IsSameDay(targetDate, now, loc)

	slots := make([]types.TimeString, 0)
	for ; !cursor.Add(duration).After(dayEnd); cursor = cursor.Add(step) {
		if today && !cursor.After(now) {
			continue
		}

		candidate := Interval{Start: cursor, End: cursor.Add(duration)}
		if overlapsAny(candidate, busy) {
			continue
		}

		slots = append(slots, types.NewTimeString(cursor))
	}

	return slots, nil
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
