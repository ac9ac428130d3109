package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	listingClient "github.com/LacerdaAcacio/agendei-booking/internal/integrations/listingservice"
	"github.com/LacerdaAcacio/agendei-booking/pkg/types"
)

// UseCase use case для получения доступных слотов ресурса на дату
type UseCase struct {
	reservationRepo ReservationRepository
	resourceClient  ResourceClient
	busyCache       BusyCache
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	resourceClient ResourceClient,
	busyCache BusyCache,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		resourceClient:  resourceClient,
		busyCache:       busyCache,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s, date=%s", req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не может быть в прошлом
	now := uc.timeProvider.Now()
	date := normalizeDate(req.Date, uc.location)
	if err := validateDate(date, now, uc.location); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс
	resource, err := uc.resourceClient.FindByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, listingClient.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%s not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	response := &Response{
		Date:            date,
		ResourceID:      resource.ID,
		DurationMinutes: resource.DurationMinutes,
		BufferMinutes:   resource.BufferMinutes,
		Slots:           []types.TimeString{},
	}

	// 4. Выходной день: бронирования не читаем
	day := resource.Availability.For(date.Weekday())
	if !day.Active {
		uc.logger.Info("GetAvailableSlots: resource=%s is not available on %s", resource.ID, date.Weekday())
		return response, nil
	}

	// 5. Занятые интервалы
	busy, err := uc.busyIntervals(ctx, resource.ID, date)
	if err != nil {
		return nil, err
	}

	// 6. Генерируем слоты
	slots, err := domain.GenerateSlots(day, resource.DurationMinutes, resource.BufferMinutes, date, busy, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid schedule of resource=%s: %v", resource.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	uc.metrics.RecordSlots(len(slots))

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%s, date=%s (busy=%d)",
		len(slots), resource.ID, date.Format(domain.DateFormat), len(busy))

	response.Slots = slots
	return response, nil
}

// busyIntervals читает занятые интервалы из кэша, при промахе из БД с записью в кэш.
// Версия дня читается до запроса в БД: если бронирование успело инвалидировать день,
// кэш отбросит запись.
func (uc *UseCase) busyIntervals(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.Interval, error) {
	cached, version, found, cacheErr := uc.busyCache.Get(ctx, resourceID, date)
	if cacheErr != nil {
		uc.logger.Warn("GetAvailableSlots: busy cache read failed for resource=%s: %v", resourceID, cacheErr)
	}
	if found {
		return cached, nil
	}

	dayStart, dayEnd := domain.DayBounds(date, uc.location)
	busy, err := uc.reservationRepo.FindConfirmedOnDate(ctx, resourceID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// Версия неизвестна: не пишем
	if cacheErr != nil {
		return busy, nil
	}

	if err := uc.busyCache.Set(ctx, resourceID, date, version, busy); err != nil {
		uc.logger.Warn("GetAvailableSlots: busy cache write failed for resource=%s: %v", resourceID, err)
	}

	return busy, nil
}
