package create_reservation

import (
	"errors"
	"net/http"

	"github.com/LacerdaAcacio/agendei-booking/internal/api/handlers"
	"github.com/LacerdaAcacio/agendei-booking/internal/api/middleware"
	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

const (
	msgUnauthorized       = "пользователь не определён"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidRange       = "начало должно быть раньше окончания и не в прошлом"
	msgResourceNotFound   = "ресурс не найден"
	msgSelfBooking        = "нельзя бронировать собственный ресурс"
	msgConflict           = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("POST /reservations - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /reservations - Resource not found: resource_id=%s", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /reservations - Self booking: user_id=%s, resource_id=%s", userID, req.ResourceID)
			handlers.RespondForbidden(w, msgSelfBooking)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /reservations - Conflict: resource_id=%s", req.ResourceID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
