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

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_booking"
	getProviderHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_provider"
	getProviderBookingsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_provider_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_user_bookings"
	searchProvidersHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/search_providers"
	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BeautyBooking/internal/search"
	bookingsService "github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
	providersService "github.com/m04kA/SMC-BeautyBooking/internal/service/providers"
	createBookingUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_available_slots"
	searchProvidersUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/search_providers"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/metrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-BeautyBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка над БД: метрики запросов и транзакции через контекст.
	// При выключенных метриках metricsCollector == nil и обёртка только прокидывает вызовы.
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB)

	// Поисковый движок
	taxonomy := search.NewTaxonomy(cfg.Search.Categories)
	engine := search.NewEngine(taxonomy)
	log.Info("Search engine initialized with %d categories", taxonomy.Len())

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, providerRepository, log)
	providerSvc := providersService.NewService(providerRepository, log)

	// Use cases
	var searchMetrics searchProvidersUC.MetricsRecorder
	if metricsCollector != nil {
		searchMetrics = metricsCollector
	}
	searchProvidersUseCase := searchProvidersUC.NewUseCase(
		providerRepository,
		bookingRepository,
		engine,
		txMgr,
		searchMetrics,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		providerRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		providerRepository,
		bookingRepository,
		log,
	)

	// Handlers
	searchProviders := searchProvidersHandler.NewHandler(searchProvidersUseCase, log)
	getProvider := getProviderHandler.NewHandler(providerSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск мастеров, с ограничением частоты запросов
	var searchHandler http.Handler = http.HandlerFunc(searchProviders.Handle)
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.VisitorTTL)*time.Second,
			cfg.RateLimit.TrustedProxies,
			log,
		)
		if err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		searchHandler = limiter.Middleware(searchHandler)
		log.Info("Search rate limit: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	api.Handle("/providers/search", searchHandler).Methods(http.MethodGet)

	// Карточка мастера и слоты
	api.HandleFunc("/providers/{providerId:[0-9]+}", getProvider.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи клиента ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	protected.HandleFunc("/providers/{providerId:[0-9]+}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

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
