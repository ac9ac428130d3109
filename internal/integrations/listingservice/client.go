package listingservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
)

// BreakerSettings пороги circuit breaker
type BreakerSettings struct {
	MaxFailures uint32        // Подряд идущих ошибок до размыкания
	OpenTimeout time.Duration // Сколько breaker остаётся разомкнутым
	MaxRequests uint32        // Пробных запросов в полуоткрытом состоянии
}

// Client клиент для работы с ListingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*domain.Resource]
	log        Logger
}

// NewClient создает новый экземпляр клиента ListingService
func NewClient(baseURL string, timeout time.Duration, breaker BreakerSettings, log Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*domain.Resource](gobreaker.Settings{
		Name:        "listingservice",
		MaxRequests: breaker.MaxRequests,
		Timeout:     breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breaker.MaxFailures
		},
		// ответ 404 это штатный ответ сервиса, а не сбой
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrResourceNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("ListingService: circuit breaker %s changed state %s -> %s", name, from, to)
		},
	})

	return c
}

// FindByID получает ресурс по ID
func (c *Client) FindByID(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error) {
	resource, err := c.breaker.Execute(func() (*domain.Resource, error) {
		return c.getResource(ctx, resourceID)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.log.Error("ListingService: request for resource id=%s rejected: %v", resourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (c *Client) getResource(ctx context.Context, resourceID uuid.UUID) (*domain.Resource, error) {
	url := fmt.Sprintf("%s/internal/resources/%s", c.baseURL, resourceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrResourceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var resource Resource
	if err := json.NewDecoder(resp.Body).Decode(&resource); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return resource.ToDomain(), nil
}
