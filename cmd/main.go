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

	cancelBookingHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/cancel_booking"
	getAvailabilityHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/get_availability"
	getBookingHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/get_booking"
	getBookingOptionsHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/get_booking_options"
	getBranchBookingsHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/get_branch_bookings"
	getBranchConfigHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/get_branch_config"
	getStudentBookingsHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/get_student_bookings"
	previewRecurrenceHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/preview_recurrence"
	submitBookingsHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/submit_bookings"
	updateBranchConfigHandler "github.com/Skymx82/autosoft-sub001/internal/api/handlers/update_branch_config"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/config"
	bookingRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/booking"
	configRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/config"
	instructorRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/instructor"
	vehicleRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/vehicle"
	studentServiceClient "github.com/Skymx82/autosoft-sub001/internal/integrations/studentservice"
	"github.com/Skymx82/autosoft-sub001/internal/service/availability"
	bookingsService "github.com/Skymx82/autosoft-sub001/internal/service/bookings"
	configService "github.com/Skymx82/autosoft-sub001/internal/service/config"
	createBookingUC "github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
	getAvailabilityUC "github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
	getBookingOptionsUC "github.com/Skymx82/autosoft-sub001/internal/usecase/get_booking_options"
	previewRecurrenceUC "github.com/Skymx82/autosoft-sub001/internal/usecase/preview_recurrence"
	submitBookingsUC "github.com/Skymx82/autosoft-sub001/internal/usecase/submit_bookings"
	"github.com/Skymx82/autosoft-sub001/pkg/dbmetrics"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
	"github.com/Skymx82/autosoft-sub001/pkg/metrics"
	"github.com/Skymx82/autosoft-sub001/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting autosoft planning service...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector   *metrics.Metrics
		submissionRecorder submitBookingsUC.SubmissionRecorder
		supersededRecorder getAvailabilityUC.SupersededRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		submissionRecorder = metricsCollector
		supersededRecorder = metricsCollector
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

	// Без метрик обёртка прозрачна
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	studentClient := studentServiceClient.NewClient(
		cfg.StudentService.URL,
		time.Duration(cfg.StudentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StudentService=%s timeout=%ds)",
		cfg.StudentService.URL, cfg.StudentService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	instructorRepository := instructorRepo.NewRepository(wrappedDB)
	vehicleRepository := vehicleRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	configSvc := configService.NewService(configRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		instructorRepository,
		vehicleRepository,
		studentClient,
		txMgr,
		log,
	)
	submitBookingsUseCase := submitBookingsUC.NewUseCase(createBookingUseCase, submissionRecorder, log)
	previewRecurrenceUseCase := previewRecurrenceUC.NewUseCase(log)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		configRepository,
		instructorRepository,
		vehicleRepository,
		availability.NewTracker(),
		supersededRecorder,
		log,
	)
	getBookingOptionsUseCase := getBookingOptionsUC.NewUseCase(getAvailabilityUseCase, studentClient, log)

	// Инициализируем handlers
	submitBookings := submitBookingsHandler.NewHandler(submitBookingsUseCase, log)
	previewRecurrence := previewRecurrenceHandler.NewHandler(previewRecurrenceUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBookingOptions := getBookingOptionsHandler.NewHandler(getBookingOptionsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)
	getBranchConfig := getBranchConfigHandler.NewHandler(configSvc, log)
	updateBranchConfig := updateBranchConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID, X-School-ID, X-Branch-ID)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Записи ограничены по частоте на пользователя
	writes := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.RPS > 0 {
		writes.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log).Middleware)
		log.Info("Rate limit for writes: %.2f rps, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Занятия ---
	// Запись одного занятия или серии
	writes.HandleFunc("/bookings", submitBookings.Handle).Methods(http.MethodPost)

	// Предпросмотр дат серии (ничего не записывает)
	api.HandleFunc("/bookings/preview", previewRecurrence.Handle).Methods(http.MethodPost)

	// Получение занятия по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена занятия
	writes.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Занятия ученика во всех бюро автошколы
	api.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)

	// --- Планинг бюро ---
	// Доступность инструкторов и машин на дату
	api.HandleFunc("/schools/{schoolId}/branches/{branchId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Варианты для формы записи: длительности, инструкторы, машины
	api.HandleFunc("/schools/{schoolId}/branches/{branchId}/booking-options",
		getBookingOptions.Handle).Methods(http.MethodGet)

	// Планинг бюро с фильтрами
	api.HandleFunc("/schools/{schoolId}/branches/{branchId}/bookings",
		getBranchBookings.Handle).Methods(http.MethodGet)

	// Конфигурация планинга
	api.HandleFunc("/schools/{schoolId}/branches/{branchId}/config",
		getBranchConfig.Handle).Methods(http.MethodGet)
	writes.HandleFunc("/schools/{schoolId}/branches/{branchId}/config",
		updateBranchConfig.Handle).Methods(http.MethodPut)

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
	close(stopMetricsCh)

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
