package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ResourceID uuid.UUID
	Date       time.Time // Календарная дата, время суток игнорируется
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Полночь запрошенной даты в часовом поясе сервиса
	ResourceID      uuid.UUID
	DurationMinutes int                // Длительность слота
	BufferMinutes   int                // Перерыв между слотами
	Slots           []types.TimeString // Времена начала свободных слотов
}
