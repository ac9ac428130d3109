package create_reservation

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

const operation = "create"

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.RecordReservation(operation, resultOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%s, resource=%s, start=%s, end=%s",
		req.ClientID, req.ResourceID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронировать прошлое нельзя
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс
	resource, err := uc.resourceClient.FindByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, listingClient.ErrResourceNotFound) {
			uc.logger.Warn("CreateReservation: resource id=%s not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get resource id=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Владелец не может бронировать собственный ресурс
	if resource.IsOwnedBy(req.ClientID) {
		uc.logger.Warn("CreateReservation: client=%s is the owner of resource=%s", req.ClientID, req.ResourceID)
		return nil, ErrSelfBooking
	}

	start, end := req.StartAt.UTC(), req.EndAt.UTC()
	var result *domain.Reservation

	// 5. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Ищем подтверждённое пересекающееся бронирование (строки блокируются)
		existing, err := uc.reservationRepo.FindConfirmedOverlapping(txCtx, resource.ID, start, end, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("CreateReservation: interval overlaps reservation id=%s", existing.ID)
			return ErrSlotConflict
		}

		// 5.2. Считаем стоимость
		pricing := domain.CalculatePricing(resource.Price, start, end)

		reservation := &domain.Reservation{
			ResourceID: resource.ID,
			ClientID:   req.ClientID,
			OwnerID:    resource.OwnerID,
			StartAt:    start,
			EndAt:      end,
			Status:     domain.StatusConfirmed,
		}
		reservation.ApplyPricing(pricing)

		// 5.3. Сохраняем
		created, err := uc.reservationRepo.Insert(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				uc.logger.Warn("CreateReservation: rejected by overlap constraint")
				return ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to insert reservation: %v", err)
			return fmt.Errorf("%w: failed to insert reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кэш занятых интервалов
	uc.invalidate(ctx, result)

	uc.logger.Info("CreateReservation: successfully created reservation id=%s, total=%s",
		result.ID, result.TotalPrice.StringFixed(2))

	return toResponse(result), nil
}

func (uc *UseCase) invalidate(ctx context.Context, r *domain.Reservation) {
	dates := r.Interval().Dates(uc.location)
	if err := uc.busyCache.Invalidate(ctx, r.ResourceID, dates...); err != nil {
		uc.logger.Warn("CreateReservation: failed to invalidate busy cache for resource=%s: %v", r.ResourceID, err)
	}
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
