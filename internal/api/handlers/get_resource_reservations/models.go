package get_resource_reservations

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/LacerdaAcacio/agendei-booking/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров from, to (RFC 3339) и status
func ToServiceRequest(userID, resourceID uuid.UUID, query url.Values) (*models.GetResourceReservationsRequest, error) {
	req := &models.GetResourceReservationsRequest{
		UserID:     userID,
		ResourceID: resourceID,
	}

	var err error
	if req.From, err = parseOptionalTime(query.Get("from")); err != nil {
		return nil, err
	}
	if req.To, err = parseOptionalTime(query.Get("to")); err != nil {
		return nil, err
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
