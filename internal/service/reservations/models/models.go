package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             uuid.UUID `json:"-"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
}

// GetClientReservationsRequest запрос на получение истории клиента
type GetClientReservationsRequest struct {
	UserID   uuid.UUID // Кто запрашивает
	ClientID uuid.UUID // Чью историю
	Status   *string
}

// GetResourceReservationsRequest запрос на получение бронирований ресурса
type GetResourceReservationsRequest struct {
	UserID     uuid.UUID
	ResourceID uuid.UUID
	From       *time.Time // Начало окна (опционально)
	To         *time.Time // Конец окна (опционально)
	Status     *string    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetResourceReservationsRequest) ToDomainFilter() (domain.ResourceReservationsFilter, error) {
	filter := domain.ResourceReservationsFilter{
		ResourceID: r.ResourceID,
		From:       r.From,
		To:         r.To,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	ResourceID    uuid.UUID `json:"resourceId"`
	ClientID      uuid.UUID `json:"clientId"`
	OwnerID       uuid.UUID `json:"ownerId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"totalPrice"` // "112.00"
	ServiceFee    string    `json:"serviceFee"`
	OwnerEarnings string    `json:"ownerEarnings"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ResourceID:         r.ResourceID,
		ClientID:           r.ClientID,
		OwnerID:            r.OwnerID,
		StartAt:            r.StartAt.UTC(),
		EndAt:              r.EndAt.UTC(),
		Status:             string(r.Status),
		TotalPrice:         r.TotalPrice.StringFixed(2),
		ServiceFee:         r.ServiceFee.StringFixed(2),
		OwnerEarnings:      r.OwnerEarnings.StringFixed(2),
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
