package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	cancelReservationHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/get_available_slots"
	getClientReservationsHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/get_client_reservations"
	getReservationHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/get_reservation"
	getResourceReservationsHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/get_resource_reservations"
	rescheduleReservationHandler "github.com/LacerdaAcacio/agendei-booking/internal/api/handlers/reschedule_reservation"
	"github.com/LacerdaAcacio/agendei-booking/internal/api/middleware"
	"github.com/LacerdaAcacio/agendei-booking/internal/config"
	"github.com/LacerdaAcacio/agendei-booking/internal/domain"
	"github.com/LacerdaAcacio/agendei-booking/internal/infra/cache/busy"
	reservationRepo "github.com/LacerdaAcacio/agendei-booking/internal/infra/storage/reservation"
	"github.com/LacerdaAcacio/agendei-booking/internal/integrations/listingservice"
	reservationsService "github.com/LacerdaAcacio/agendei-booking/internal/service/reservations"
	createReservationUC "github.com/LacerdaAcacio/agendei-booking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/LacerdaAcacio/agendei-booking/internal/usecase/get_available_slots"
	rescheduleReservationUC "github.com/LacerdaAcacio/agendei-booking/internal/usecase/reschedule_reservation"
	"github.com/LacerdaAcacio/agendei-booking/pkg/dbmetrics"
	"github.com/LacerdaAcacio/agendei-booking/pkg/metrics"
	"github.com/LacerdaAcacio/agendei-booking/pkg/txmanager"
)

// businessMetrics общие бизнес-метрики use cases и сервиса
type businessMetrics interface {
	RecordReservation(operation, result string)
	RecordSlots(count int)
}

// busyCache кэш занятых интервалов: redis или заглушка
type busyCache interface {
	Get(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.Interval, int64, bool, error)
	Set(ctx context.Context, resourceID uuid.UUID, date time.Time, version int64, intervals []domain.Interval) error
	Invalidate(ctx context.Context, resourceID uuid.UUID, dates ...time.Time) error
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Close()
		defer db.Close()

		log.Info("Starting agendei-booking...")

		location, err := cfg.Location()
		if err != nil {
			return fmt.Errorf("failed to resolve timezone: %w", err)
		}
		log.Info("Scheduling timezone: %s", location)

		// Инициализируем метрики (если включены)
		var (
			metricsCollector *metrics.Metrics
			business         businessMetrics = metrics.Nop{}
		)
		stopMetricsCh := make(chan struct{})

		if cfg.Metrics.Enabled {
			metricsCollector = metrics.New(cfg.Metrics.ServiceName)
			business = metricsCollector
			log.Info("Metrics enabled at %s", cfg.Metrics.Path)
		}

		// При выключенных метриках обёртка работает как обычный *sql.DB
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		txManager := txmanager.NewTransactionManager(
			wrappedDB,
			txmanager.WithSerializableRetries(cfg.Scheduling.SerializableRetries),
		)
		reservationRepository := reservationRepo.NewRepository(wrappedDB)

		// Кэш занятых интервалов (если включен)
		var cache busyCache = busy.Nop{}
		if cfg.Redis.Enabled {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()

			if err := redisClient.Ping(cmd.Context()).Err(); err != nil {
				log.Warn("Redis is unreachable at %s, busy cache misses will hit the database: %v", cfg.Redis.Addr, err)
			}
			cache = busy.NewCache(redisClient, config.Seconds(cfg.Redis.BusyTTLSeconds))
			log.Info("Busy interval cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.BusyTTLSeconds)
		}

		// Инициализируем клиента сервиса объявлений
		resourceClient := listingservice.NewClient(
			cfg.ListingService.URL,
			config.Seconds(cfg.ListingService.Timeout),
			listingservice.BreakerSettings{
				MaxFailures: cfg.ListingService.BreakerMaxFailures,
				OpenTimeout: config.Seconds(cfg.ListingService.BreakerOpenTimeout),
				MaxRequests: cfg.ListingService.BreakerMaxRequests,
			},
			log,
		)
		log.Info("Listing service client initialized (url=%s, timeout=%ds)",
			cfg.ListingService.URL, cfg.ListingService.Timeout)

		// Инициализируем use cases и сервисы
		createReservationUseCase := createReservationUC.NewUseCase(
			reservationRepository,
			resourceClient,
			cache,
			txManager,
			business,
			location,
			log,
		)
		rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
			reservationRepository,
			resourceClient,
			cache,
			txManager,
			business,
			location,
			log,
		)
		getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
			reservationRepository,
			resourceClient,
			cache,
			business,
			location,
			log,
		)
		reservationSvc := reservationsService.NewService(
			reservationRepository,
			resourceClient,
			cache,
			txManager,
			business,
			location,
			log,
		)

		// Инициализируем handlers
		getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
		createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
		rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
		getReservation := getReservationHandler.NewHandler(reservationSvc, log)
		cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
		getClientReservations := getClientReservationsHandler.NewHandler(reservationSvc, log)
		getResourceReservations := getResourceReservationsHandler.NewHandler(reservationSvc, log)

		// Настраиваем роутер
		r := mux.NewRouter()

		if cfg.Metrics.Enabled {
			r.Use(middleware.Metrics(metricsCollector))
			r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
			log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
		}

		api := r.PathPrefix("/api/v1").Subrouter()

		// ============================================================
		// PUBLIC ROUTES (без аутентификации)
		// ============================================================

		api.HandleFunc("/resources/{resourceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

		// ============================================================
		// PROTECTED ROUTES (требуют X-User-ID header)
		// ============================================================

		protected := api.PathPrefix("").Subrouter()
		protected.Use(middleware.Auth)

		protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
		protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
		protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
		protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)
		protected.HandleFunc("/users/{userId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

		// Агенда ресурса (для владельца)
		protected.HandleFunc("/resources/{resourceId}/reservations", getResourceReservations.Handle).Methods(http.MethodGet)

		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		srv := &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
			WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
			IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
		}

		// Graceful shutdown
		go func() {
			log.Info("Starting server on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("Server failed to start: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("Shutting down server...")

		// Останавливаем сбор метрик connection pool
		close(stopMetricsCh)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}

		log.Info("Server stopped gracefully")
		return nil
	},
}
