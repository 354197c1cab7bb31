package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/studiobook/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/studiobook/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/studiobook/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/studiobook/booking-service/internal/api/handlers/get_booking"
	getBookingWindowHandler "github.com/studiobook/booking-service/internal/api/handlers/get_booking_window"
	listBookingsHandler "github.com/studiobook/booking-service/internal/api/handlers/list_bookings"
	updateBookingWindowHandler "github.com/studiobook/booking-service/internal/api/handlers/update_booking_window"
	"github.com/studiobook/booking-service/internal/api/middleware"
	"github.com/studiobook/booking-service/internal/config"
	bookingRepo "github.com/studiobook/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/studiobook/booking-service/internal/infra/storage/schedule"
	servicecatalogRepo "github.com/studiobook/booking-service/internal/infra/storage/servicecatalog"
	settingsRepo "github.com/studiobook/booking-service/internal/infra/storage/settings"
	tokenRepo "github.com/studiobook/booking-service/internal/infra/storage/token"
	notifierClient "github.com/studiobook/booking-service/internal/integrations/notifier"
	bookingsService "github.com/studiobook/booking-service/internal/service/bookings"
	windowService "github.com/studiobook/booking-service/internal/service/window"
	cancelBookingUC "github.com/studiobook/booking-service/internal/usecase/cancel_booking"
	createBookingUC "github.com/studiobook/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/studiobook/booking-service/internal/usecase/get_available_slots"
	"github.com/studiobook/booking-service/pkg/dbmetrics"
	"github.com/studiobook/booking-service/pkg/logger"
	"github.com/studiobook/booking-service/pkg/metrics"
	"github.com/studiobook/booking-service/pkg/simpletxmanager"
	"github.com/studiobook/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона бизнеса: в ней интерпретируются часы работы и даты
	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}
	log.Info("Business timezone: %s", loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Notifier client initialized (enabled=%v, url=%s)", cfg.Notifier.Enabled, cfg.Notifier.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		serviceRepository  *servicecatalogRepo.Repository
		settingsRepository *settingsRepo.Repository
		tokenRepository    *tokenRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		serviceRepository = servicecatalogRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		tokenRepository = tokenRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		serviceRepository = servicecatalogRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		tokenRepository = tokenRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	windowSvc := windowService.NewService(settingsRepository, loc, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		serviceRepository,
		windowSvc,
		&getAvailableSlotsUC.RealTimeProvider{},
		loc,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		tokenRepository,
		serviceRepository,
		scheduleRepository,
		windowSvc,
		txMgr,
		notifier,
		&createBookingUC.RealTimeProvider{},
		loc,
		createBookingUC.Config{
			TokenTTL:            cfg.Business.TokenTTL(),
			CancellationBaseURL: cfg.Business.CancellationBaseURL,
		},
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		tokenRepository,
		txMgr,
		notifier,
		&cancelBookingUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	getBookingWindow := getBookingWindowHandler.NewHandler(windowSvc, log)
	updateBookingWindow := updateBookingWindowHandler.NewHandler(windowSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты по услуге
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования по токену или ID
	api.HandleFunc("/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// Список бронирований с фильтрацией
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Окно бронирования
	admin.HandleFunc("/booking-window", getBookingWindow.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/booking-window", updateBookingWindow.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
