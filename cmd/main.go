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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	blockedDatesHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/blocked_dates"
	checkAvailabilityHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/create_reservation"
	getQuoteHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/get_quote"
	getReservationHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/get_reservation"
	holidaysHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/holidays"
	listReservationsHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/list_reservations"
	pricingRulesHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/pricing_rules"
	updateReservationStatusHandler "github.com/m04kA/SMC-CampBooking/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-CampBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CampBooking/internal/config"
	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	rulesCache "github.com/m04kA/SMC-CampBooking/internal/infra/cache/rules"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
	cabinRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/cabin"
	holidayRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/holiday"
	pricingRuleRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/pricing_rule"
	reservationRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/reservation"
	calendarService "github.com/m04kA/SMC-CampBooking/internal/service/calendar"
	pricingRulesService "github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules"
	reservationsService "github.com/m04kA/SMC-CampBooking/internal/service/reservations"
	cancelLateArrivalsUC "github.com/m04kA/SMC-CampBooking/internal/usecase/cancel_late_arrivals"
	checkAvailabilityUC "github.com/m04kA/SMC-CampBooking/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-CampBooking/internal/usecase/create_reservation"
	getQuoteUC "github.com/m04kA/SMC-CampBooking/internal/usecase/get_quote"
	"github.com/m04kA/SMC-CampBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
	"github.com/m04kA/SMC-CampBooking/pkg/metrics"
	"github.com/m04kA/SMC-CampBooking/pkg/txmanager"
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

	log.Info("Starting SMC-CampBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	if cfg.Metrics.Enabled {
		dbmetrics.Start(db, metricsCollector, dbmetrics.DefaultInterval, stopCh)
		log.Info("Database metrics collection started")
	}

	// Кэш правил ценообразования (опционально)
	// Без redis передаем nil-интерфейс, а не типизированный nil
	var cache pricingRulesService.RulesCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, rules will be read from database until it recovers: %v", err)
		}
		cancelPing()

		cache = rulesCache.NewCache(redisClient, time.Duration(cfg.Redis.RulesTTL)*time.Second)
		log.Info("Rules cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.RulesTTL)
	}

	// Инициализируем репозитории
	cabinRepository := cabinRepo.NewRepository(db)
	pricingRuleRepository := pricingRuleRepo.NewRepository(db)
	blockedDateRepository := blockedDateRepo.NewRepository(db)
	holidayRepository := holidayRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Правила проживания
	policy, err := buildPolicy(cfg.Booking)
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}

	// Инициализируем сервисы
	pricingRulesSvc := pricingRulesService.NewService(pricingRuleRepository, cache, log)
	calendarSvc := calendarService.NewService(blockedDateRepository, holidayRepository, cabinRepository, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, txMgr, log)

	// Инициализируем use cases
	getQuoteUseCase := getQuoteUC.NewUseCase(
		cabinRepository,
		reservationRepository,
		blockedDateRepository,
		holidayRepository,
		pricingRulesSvc,
		policy,
		metricsCollector,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		cabinRepository,
		reservationRepository,
		blockedDateRepository,
		holidayRepository,
		policy,
		metricsCollector,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		cabinRepository,
		reservationRepository,
		blockedDateRepository,
		pricingRulesSvc,
		txMgr,
		policy,
		metricsCollector,
		log,
	)

	cancelLateArrivalsUseCase := cancelLateArrivalsUC.NewUseCase(
		reservationRepository,
		txMgr,
		time.Duration(cfg.Booking.LateArrivalGraceMinutes)*time.Minute,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	pricingRules := pricingRulesHandler.NewHandler(pricingRulesSvc, log)
	blockedDates := blockedDatesHandler.NewHandler(calendarSvc, log)
	holidays := holidaysHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет стоимости проживания
	api.HandleFunc("/cabins/{cabinId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// Проверка доступности домика
	api.HandleFunc("/cabins/{cabinId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Подтверждение или отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// --- Бронирования ---
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// --- Правила ценообразования ---
	admin.HandleFunc("/pricing-rules", pricingRules.List).Methods(http.MethodGet)
	admin.HandleFunc("/pricing-rules", pricingRules.Create).Methods(http.MethodPost)
	admin.HandleFunc("/pricing-rules/{ruleId}", pricingRules.Update).Methods(http.MethodPut)
	admin.HandleFunc("/pricing-rules/{ruleId}", pricingRules.Delete).Methods(http.MethodDelete)

	// --- Закрытые даты ---
	admin.HandleFunc("/blocked-dates", blockedDates.List).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", blockedDates.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{blockedDateId}", blockedDates.Delete).Methods(http.MethodDelete)

	// --- Праздники ---
	admin.HandleFunc("/holidays", holidays.List).Methods(http.MethodGet)
	admin.HandleFunc("/holidays", holidays.Create).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{holidayId}", holidays.Delete).Methods(http.MethodDelete)

	// CORS
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole}),
	)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновая отмена бронирований с неявкой
	if cfg.Jobs.LateArrivalsEnabled {
		interval := time.Duration(cfg.Jobs.LateArrivalsInterval) * time.Second
		go runLateArrivalsJob(cancelLateArrivalsUseCase, interval, log, stopCh)
		log.Info("Late arrivals job started (interval=%s, grace=%dm)", interval, cfg.Booking.LateArrivalGraceMinutes)
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

	// Останавливаем фоновые задачи и сбор метрик connection pool
	close(stopCh)

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

// buildPolicy собирает правила проживания из конфига
func buildPolicy(b config.BookingConfig) (availability.Policy, error) {
	startMonth, startDay, err := b.PeakStartMonthDay()
	if err != nil {
		return availability.Policy{}, err
	}
	endMonth, endDay, err := b.PeakEndMonthDay()
	if err != nil {
		return availability.Policy{}, err
	}

	return availability.Policy{
		MinNights:         b.MinNights,
		PeakMinNights:     b.PeakMinNights,
		MaxNights:         b.MaxNights,
		PeakStart:         availability.MonthDay{Month: startMonth, Day: startDay},
		PeakEnd:           availability.MonthDay{Month: endMonth, Day: endDay},
		MinNoticeHours:    b.MinNoticeHours,
		PeakMinNoticeDays: b.PeakMinNoticeDays,
	}, nil
}

// runLateArrivalsJob периодически отменяет подтвержденные бронирования, гости которых не заехали
func runLateArrivalsJob(uc *cancelLateArrivalsUC.UseCase, interval time.Duration, log *logger.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			resp, err := uc.Execute(ctx)
			cancel()
			if err != nil {
				log.Error("Late arrivals job failed: %v", err)
				continue
			}
			if len(resp.Cancelled) > 0 || resp.Failed > 0 {
				log.Info("Late arrivals job: checked=%d, cancelled=%d, failed=%d",
					resp.Checked, len(resp.Cancelled), resp.Failed)
			}
		case <-stop:
			return
		}
	}
}
