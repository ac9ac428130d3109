package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	getAvailableSlots "github.com/LacerdaAcacio/agendei-booking/internal/usecase/get_available_slots"
	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string             `json:"date"` // YYYY-MM-DD
	ResourceID      uuid.UUID          `json:"resourceId"`
	DurationMinutes int                `json:"durationMinutes"`
	BufferMinutes   int                `json:"bufferMinutes"`
	Slots           []types.TimeString `json:"slots"`
}

// ToUseCaseRequest парсит дату в часовом поясе сервиса и формирует запрос к use case
func ToUseCaseRequest(resourceID uuid.UUID, date string, loc *time.Location) (*getAvailableSlots.Request, error) {
	parsed, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ResourceID: resourceID,
		Date:       parsed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []types.TimeString{}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ResourceID:      resp.ResourceID,
		DurationMinutes: resp.DurationMinutes,
		BufferMinutes:   resp.BufferMinutes,
		Slots:           slots,
	}
}
