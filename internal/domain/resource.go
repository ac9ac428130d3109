package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

// PriceUnit единица тарификации ресурса
type PriceUnit string

const (
	PriceUnitHourly    PriceUnit = "HOURLY"
	PriceUnitDaily     PriceUnit = "DAILY"
	PriceUnitFixed     PriceUnit = "FIXED"
	PriceUnitPerPerson PriceUnit = "PER_PERSON"
)

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Active bool
	Start  types.TimeString
	End    types.TimeString
}

// WeeklyAvailability недельный шаблон доступности, индекс = time.Weekday (Sunday = 0)
type WeeklyAvailability [7]DaySchedule

// For возвращает расписание на день недели
func (w WeeklyAvailability) For(day time.Weekday) DaySchedule {
	if day < time.Sunday || day > time.Saturday {
		return DaySchedule{}
	}
	return w[day]
}

// Resource бронируемая услуга. Управляется сервисом объявлений, здесь только читается.
type Resource struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Title           string
	DurationMinutes int
	BufferMinutes   int
	Availability    WeeklyAvailability
	Price           decimal.Decimal
	PriceUnit       PriceUnit
}

// IsOwnedBy returns true if userID is the provider of the resource
func (r *Resource) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}
