package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	reservationRepo "github.com/LacerdaAcacio/agendei-booking/internal/infra/storage/reservation"
	listingClient "github.com/LacerdaAcacio/agendei-booking/internal/integrations/listingservice"
	"github.com/LacerdaAcacio/agendei-booking/pkg/metrics"
)

const operation = "reschedule"

// UseCase use case для переноса бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	resourceClient  ResourceClient
	busyCache       BusyCache
	txManager       TransactionManager
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
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		resourceClient:  resourceClient,
		busyCache:       busyCache,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования.
// ID и статус сохраняются, интервал и стоимость заменяются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.RecordReservation(operation, resultOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: reservation=%s, user=%s, start=%s, end=%s",
		req.ReservationID, req.UserID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// 1. Валидация нового интервала
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	start, end := req.StartAt.UTC(), req.EndAt.UTC()

	// 2. Предварительные проверки без транзакции
	reservation, err := uc.findReservation(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Текущая цена ресурса. Сетевой вызов делаем до транзакции, чтобы не держать
	// блокировки на время ответа сервиса объявлений. Ошибку отдаём после проверки
	// пересечений, чтобы конфликт имел приоритет.
	var pricing domain.Pricing
	resource, resourceErr := uc.resourceClient.FindByID(ctx, reservation.ResourceID)
	if resourceErr == nil {
		pricing = domain.CalculatePricing(resource.Price, start, end)
	}

	var previous domain.Interval
	var result *domain.Reservation

	// 4. Повторная проверка под блокировкой и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Бронирование с блокировкой строки: статус мог измениться
		locked, err := uc.findReservation(txCtx, req)
		if err != nil {
			return err
		}

		// 4.2. Проверка пересечений без учёта самого бронирования
		existing, err := uc.reservationRepo.FindConfirmedOverlapping(txCtx, locked.ResourceID, start, end, &locked.ID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("RescheduleReservation: interval overlaps reservation id=%s", existing.ID)
			return ErrSlotConflict
		}

		// 4.3. Ресурс нужен для пересчёта стоимости
		if resourceErr != nil {
			if errors.Is(resourceErr, listingClient.ErrResourceNotFound) {
				uc.logger.Warn("RescheduleReservation: resource id=%s not found", locked.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get resource id=%s: %v", locked.ResourceID, resourceErr)
			return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, resourceErr)
		}

		// 4.4. Сохраняем новые поля
		updated, err := uc.reservationRepo.UpdateFields(txCtx, locked.ID, domain.ReservationFields{
			StartAt:       start,
			EndAt:         end,
			TotalPrice:    pricing.TotalPrice,
			ServiceFee:    pricing.ServiceFee,
			OwnerEarnings: pricing.OwnerEarnings,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				uc.logger.Warn("RescheduleReservation: rejected by overlap constraint")
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleReservation: failed to update reservation id=%s: %v", locked.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		previous = locked.Interval()
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Сбрасываем кэш для старых и новых дат
	dates := append(previous.Dates(uc.location), result.Interval().Dates(uc.location)...)
	if err := uc.busyCache.Invalidate(ctx, result.ResourceID, dates...); err != nil {
		uc.logger.Warn("RescheduleReservation: failed to invalidate busy cache for resource=%s: %v", result.ResourceID, err)
	}

	uc.logger.Info("RescheduleReservation: successfully rescheduled reservation id=%s, total=%s",
		result.ID, result.TotalPrice.StringFixed(2))

	return toResponse(result), nil
}

// findReservation получает бронирование и проверяет, что его может перенести req.UserID.
// Внутри транзакции строка блокируется.
func (uc *UseCase) findReservation(ctx context.Context, req *Request) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.FindByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("RescheduleReservation: reservation id=%s not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RescheduleReservation: failed to get reservation id=%s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
	}

	// Переносить может только клиент и только подтверждённое бронирование
	if err := validateReservation(reservation, req.UserID); err != nil {
		uc.logger.Warn("RescheduleReservation: reservation id=%s, user=%s: %v", reservation.ID, req.UserID, err)
		return nil, err
	}

	return reservation, nil
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		ResourceID:    r.ResourceID,
		ClientID:      r.ClientID,
		OwnerID:       r.OwnerID,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Status:        string(r.Status),
		TotalPrice:    r.TotalPrice,
		ServiceFee:    r.ServiceFee,
		OwnerEarnings: r.OwnerEarnings,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case domain.IsRejection(err):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
