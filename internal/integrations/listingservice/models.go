package listingservice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

// Resource модель ресурса из ListingService
type Resource struct {
	ID              uuid.UUID       `json:"id"`
	OwnerID         uuid.UUID       `json:"ownerId"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"durationMinutes"`
	BufferMinutes   int             `json:"bufferMinutes"`
	Price           decimal.Decimal `json:"price"`
	PriceUnit       string          `json:"priceUnit"`
	Availability    Availability    `json:"availability"`
}

// Day расписание дня в ответе ListingService
type Day struct {
	Active bool             `json:"active"`
	Start  types.TimeString `json:"start"`
	End    types.TimeString `json:"end"`
}

// Availability недельное расписание. Отсутствующий день считается выходным.
type Availability struct {
	Monday    *Day `json:"monday"`
	Tuesday   *Day `json:"tuesday"`
	Wednesday *Day `json:"wednesday"`
	Thursday  *Day `json:"thursday"`
	Friday    *Day `json:"friday"`
	Saturday  *Day `json:"saturday"`
	Sunday    *Day `json:"sunday"`
}

// ErrorResponse модель ошибки от ListingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ в доменный ресурс
func (r *Resource) ToDomain() *domain.Resource {
	return &domain.Resource{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Title:           r.Title,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
		Availability:    r.Availability.ToDomain(),
		Price:           r.Price,
		PriceUnit:       domain.PriceUnit(r.PriceUnit),
	}
}

// ToDomain раскладывает дни по индексу time.Weekday
func (a Availability) ToDomain() domain.WeeklyAvailability {
	var week domain.WeeklyAvailability
	week[time.Monday] = a.Monday.toDomain()
	week[time.Tuesday] = a.Tuesday.toDomain()
	week[time.Wednesday] = a.Wednesday.toDomain()
	week[time.Thursday] = a.Thursday.toDomain()
	week[time.Friday] = a.Friday.toDomain()
	week[time.Saturday] = a.Saturday.toDomain()
	week[time.Sunday] = a.Sunday.toDomain()
	return week
}

// toDomain возвращает выходной день для nil
func (d *Day) toDomain() domain.DaySchedule {
	if d == nil {
		return domain.DaySchedule{}
	}
	return domain.DaySchedule{
		Active: d.Active,
		Start:  d.Start,
		End:    d.End,
	}
}
