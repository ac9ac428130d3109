package get_client_reservations

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/LacerdaAcacio/agendei-booking/internal/api/handlers"
	"github.com/LacerdaAcacio/agendei-booking/internal/api/middleware"
	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations/models"
)

const (
	msgUnauthorized    = "пользователь не определён"
	msgInvalidClientID = "некорректный ID пользователя"
	msgInvalidStatus   = "некорректный статус"
	msgForbidden       = "можно просматривать только свои бронирования"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/reservations
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	clientID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("GET /users/{id}/reservations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	req := &models.GetClientReservationsRequest{
		UserID:   userID,
		ClientID: clientID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetClientReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/reservations - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /users/{id}/reservations - Access denied: client_id=%s, user_id=%s", clientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{id}/reservations - Failed to get reservations: client_id=%s, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/reservations - Reservations retrieved successfully: client_id=%s, count=%d",
		clientID, len(list.Reservations))
	handlers.RespondJSON(w, http.StatusOK, list)
}
