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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addOwnerServiceHandler "github.com/sp075/salon-booking-system/internal/api/handlers/add_owner_service"
	cancelBookingHandler "github.com/sp075/salon-booking-system/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/sp075/salon-booking-system/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/sp075/salon-booking-system/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/sp075/salon-booking-system/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/sp075/salon-booking-system/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/sp075/salon-booking-system/internal/api/handlers/get_customer_bookings"
	getOwnerBookingsHandler "github.com/sp075/salon-booking-system/internal/api/handlers/get_owner_bookings"
	getOwnerProfileHandler "github.com/sp075/salon-booking-system/internal/api/handlers/get_owner_profile"
	getOwnerServicesHandler "github.com/sp075/salon-booking-system/internal/api/handlers/get_owner_services"
	listServicesHandler "github.com/sp075/salon-booking-system/internal/api/handlers/list_services"
	ownerConfirmBookingHandler "github.com/sp075/salon-booking-system/internal/api/handlers/owner_confirm_booking"
	ownerRejectBookingHandler "github.com/sp075/salon-booking-system/internal/api/handlers/owner_reject_booking"
	removeOwnerServiceHandler "github.com/sp075/salon-booking-system/internal/api/handlers/remove_owner_service"
	updateOwnerProfileHandler "github.com/sp075/salon-booking-system/internal/api/handlers/update_owner_profile"
	updateScheduleHandler "github.com/sp075/salon-booking-system/internal/api/handlers/update_schedule"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	"github.com/sp075/salon-booking-system/internal/app"
	"github.com/sp075/salon-booking-system/internal/config"
	"github.com/sp075/salon-booking-system/internal/domain"
	bookingRepo "github.com/sp075/salon-booking-system/internal/infra/storage/booking"
	catalogRepo "github.com/sp075/salon-booking-system/internal/infra/storage/catalog"
	ownerRepo "github.com/sp075/salon-booking-system/internal/infra/storage/owner"
	"github.com/sp075/salon-booking-system/internal/jobs"
	bookingsService "github.com/sp075/salon-booking-system/internal/service/bookings"
	ownersService "github.com/sp075/salon-booking-system/internal/service/owners"
	createBookingUC "github.com/sp075/salon-booking-system/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/sp075/salon-booking-system/internal/usecase/get_available_slots"
	"github.com/sp075/salon-booking-system/pkg/dbmetrics"
	"github.com/sp075/salon-booking-system/pkg/logger"
	"github.com/sp075/salon-booking-system/pkg/metrics"
	"github.com/sp075/salon-booking-system/pkg/simpletxmanager"
	"github.com/sp075/salon-booking-system/pkg/txmanager"
	"github.com/sp075/salon-booking-system/pkg/types"
)

func main() {
	// .env для локальной разработки; в проде переменные приходят из окружения
	_ = godotenv.Load()

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

	log.Info("Starting salon-booking-system...")

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

	// Применяем миграции
	migrator, err := app.NewMigrator(db, "migrations")
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, version=%d", version)
	}

	// Политика бронирования из конфигурации
	policy := domain.BookingPolicy{
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		HoldTimeoutMinutes:  cfg.Booking.HoldTimeoutMinutes,
		LunchStart:          types.TimeString(cfg.Booking.LunchStart),
		LunchEnd:            types.TimeString(cfg.Booking.LunchEnd),
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		ownerRepository   *ownerRepo.Repository
		catalogRepository *catalogRepo.Repository
		txMgr             createBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ownerRepository = ownerRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		ownerRepository = ownerRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &createBookingUC.RealTimeProvider{}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		ownerRepository,
		policy,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		getAvailableSlotsUseCase,
		txMgr,
		policy,
		timeProvider,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		ownerRepository,
		policy,
		timeProvider,
		log,
	)
	ownerSvc := ownersService.NewService(
		ownerRepository,
		catalogRepository,
		log,
	)

	// Фоновые задачи жизненного цикла бронирований
	var sweeperMetrics jobs.Metrics
	if cfg.Metrics.Enabled {
		sweeperMetrics = metricsCollector
	}
	sweeper := jobs.NewSweeper(
		bookingRepository,
		policy,
		jobs.Intervals{
			ReleaseAbandoned: time.Duration(cfg.Jobs.ReleaseAbandonedInterval) * time.Second,
			AutoConfirm:      time.Duration(cfg.Jobs.AutoConfirmInterval) * time.Second,
			MarkCompleted:    time.Duration(cfg.Jobs.MarkCompletedInterval) * time.Second,
		},
		sweeperMetrics,
		timeProvider,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	ownerConfirmBooking := ownerConfirmBookingHandler.NewHandler(bookingSvc, log)
	ownerRejectBooking := ownerRejectBookingHandler.NewHandler(bookingSvc, log)
	getOwnerProfile := getOwnerProfileHandler.NewHandler(ownerSvc, log)
	updateOwnerProfile := updateOwnerProfileHandler.NewHandler(ownerSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(ownerSvc, log)
	listServices := listServicesHandler.NewHandler(ownerSvc, log)
	getOwnerServices := getOwnerServicesHandler.NewHandler(ownerSvc, log)
	addOwnerService := addOwnerServiceHandler.NewHandler(ownerSvc, log)
	removeOwnerService := removeOwnerServiceHandler.NewHandler(ownerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/owners/{ownerProfileId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Маршруты с аутентификацией (X-User-ID)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирования клиента
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/customers/me/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Кабинет владельца
	protected.HandleFunc("/owners/me/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/me/bookings/{id}/confirm", ownerConfirmBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/owners/me/bookings/{id}/reject", ownerRejectBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/owners/me/profile", getOwnerProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/me/profile", updateOwnerProfile.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/owners/me/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/owners/me/services", getOwnerServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/me/services", addOwnerService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/owners/me/services/{serviceId}", removeOwnerService.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем фоновые задачи
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	defer sweeperCancel()
	sweeper.Start(sweeperCtx)

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	sweeper.Stop()

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
