package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	reservationRepo "github.com/LacerdaAcacio/agendei-booking/internal/infra/storage/reservation"
	listingClient "github.com/LacerdaAcacio/agendei-booking/internal/integrations/listingservice"
	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations/models"
	"github.com/LacerdaAcacio/agendei-booking/pkg/metrics"
)

const operationCancel = "cancel"

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	resourceClient  ResourceClient
	busyCache       BusyCache
	txManager       TransactionManager
	metrics         Metrics
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	resourceClient ResourceClient,
	busyCache BusyCache,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		resourceClient:  resourceClient,
		busyCache:       busyCache,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут только его клиент и владелец ресурса.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%s", id, userID)

	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !reservation.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// Cancel отменяет бронирование.
// Отменить могут клиент и владелец. Завершённое или уже отменённое бронирование отменить нельзя,
// стоимость не пересчитывается.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	resp, err := s.cancel(ctx, id, req)
	s.metrics.RecordReservation(operationCancel, resultOf(err))
	return resp, err
}

func (s *Service) cancel(ctx context.Context, id uuid.UUID, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%s", id, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason is too long for reservation id=%s", id)
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var cancelled *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем бронирование с блокировкой строки
		reservation, err := s.reservationRepo.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%s not found", id)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if !reservation.IsParticipant(req.UserID) {
			s.logger.Warn("Cancel: access denied for user=%s to cancel reservation id=%s", req.UserID, id)
			return ErrAccessDenied
		}

		if reservation.IsCompleted() {
			s.logger.Warn("Cancel: reservation id=%s is completed", id)
			return ErrAlreadyCompleted
		}

		if reservation.IsCancelled() {
			s.logger.Warn("Cancel: reservation id=%s is already cancelled", id)
			return ErrAlreadyCancelled
		}

		updated, err := s.reservationRepo.UpdateStatus(txCtx, id, domain.StatusCancelled, req.CancellationReason)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%s not found during cancellation", id)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		cancelled = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Интервал освободился
	dates := cancelled.Interval().Dates(s.location)
	if err := s.busyCache.Invalidate(ctx, cancelled.ResourceID, dates...); err != nil {
		s.logger.Warn("Cancel: failed to invalidate busy cache for resource=%s: %v", cancelled.ResourceID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", id)
	return models.FromDomainReservation(cancelled), nil
}

// GetClientReservations получает историю бронирований клиента (сначала новые).
// Пользователь видит только свою историю.
func (s *Service) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations of client=%s for user=%s, status=%v",
		req.ClientID, req.UserID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientReservations: user=%s cannot list reservations of client=%s", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		st, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	list, err := s.reservationRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: successfully fetched %d reservations for client=%s", len(list), req.ClientID)
	return models.FromDomainReservationList(list), nil
}

// GetResourceReservations получает бронирования ресурса с фильтрацией по окну и статусу.
// Доступно только владельцу ресурса.
func (s *Service) GetResourceReservations(ctx context.Context, req *models.GetResourceReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetResourceReservations: fetching reservations of resource=%s for user=%s", req.ResourceID, req.UserID)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetResourceReservations: invalid window from=%s to=%s",
			req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetResourceReservations: invalid filter for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Проверяем, что пользователь владелец ресурса
	if err := s.checkOwnerAccess(ctx, req.ResourceID, req.UserID); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceReservations: repository error for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceReservations: successfully fetched %d reservations for resource=%s", len(list), req.ResourceID)
	return models.FromDomainReservationList(list), nil
}

// checkOwnerAccess проверяет, что userID владелец ресурса
func (s *Service) checkOwnerAccess(ctx context.Context, resourceID, userID uuid.UUID) error {
	resource, err := s.resourceClient.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, listingClient.ErrResourceNotFound) {
			s.logger.Warn("checkOwnerAccess: resource id=%s not found", resourceID)
			return ErrResourceNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get resource id=%s: %v", resourceID, err)
		return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	if !resource.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%s is not the owner of resource=%s", userID, resourceID)
		return ErrAccessDenied
	}

	return nil
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
