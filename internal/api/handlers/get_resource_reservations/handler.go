package get_resource_reservations

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/LacerdaAcacio/agendei-booking/internal/api/handlers"
	"github.com/LacerdaAcacio/agendei-booking/internal/api/middleware"
	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

const (
	msgUnauthorized      = "пользователь не определён"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidWindow     = "некорректный формат from/to, ожидается RFC 3339"
	msgInvalidRange      = "from должен быть раньше to"
	msgInvalidStatus     = "некорректный статус"
	msgResourceNotFound  = "ресурс не найден"
	msgForbidden         = "доступ разрешён только владельцу ресурса"
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

// Handle GET /api/v1/resources/{resourceId}/reservations
// Query params: from, to (optional, RFC 3339), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resourceID, err := uuid.Parse(mux.Vars(r)["resourceId"])
	if err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	req, err := ToServiceRequest(userID, resourceID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Invalid window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	list, err := h.service.GetResourceReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("GET /resources/{id}/reservations - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/reservations - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /resources/{id}/reservations - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("GET /resources/{id}/reservations - Access denied: resource_id=%s, user_id=%s", resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /resources/{id}/reservations - Failed to get reservations: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/reservations - Reservations retrieved successfully: resource_id=%s, count=%d",
		resourceID, len(list.Reservations))
	handlers.RespondJSON(w, http.StatusOK, list)
}
