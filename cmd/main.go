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

	cancelAppointmentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/create_appointment"
	createInstrumentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/create_instrument"
	getAppointmentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/get_appointment"
	getCommissionConfigHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/get_commission_config"
	getCustomerAppointmentsHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/get_customer_appointments"
	getInstrumentUsagesHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/get_instrument_usages"
	markNoShowHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/mark_no_show"
	quotePriceHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/quote_price"
	startAppointmentHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/start_appointment"
	updateCommissionConfigHandler "github.com/m04kA/SMC-PricingService/internal/api/handlers/update_commission_config"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
	commissionCfgRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/commissioncfg"
	instrumentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/instrument"
	usageRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/usage"
	catalogServiceClient "github.com/m04kA/SMC-PricingService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/SMC-PricingService/internal/service/appointments"
	"github.com/m04kA/SMC-PricingService/internal/service/commission"
	commissionCfgService "github.com/m04kA/SMC-PricingService/internal/service/commissioncfg"
	"github.com/m04kA/SMC-PricingService/internal/service/eligibility"
	"github.com/m04kA/SMC-PricingService/internal/service/instruments"
	"github.com/m04kA/SMC-PricingService/internal/service/ledger"
	"github.com/m04kA/SMC-PricingService/internal/service/pricing"
	cancelAppointmentUC "github.com/m04kA/SMC-PricingService/internal/usecase/cancel_appointment"
	completeAppointmentUC "github.com/m04kA/SMC-PricingService/internal/usecase/complete_appointment"
	confirmAppointmentUC "github.com/m04kA/SMC-PricingService/internal/usecase/confirm_appointment"
	createAppointmentUC "github.com/m04kA/SMC-PricingService/internal/usecase/create_appointment"
	markNoShowUC "github.com/m04kA/SMC-PricingService/internal/usecase/mark_no_show"
	quotePriceUC "github.com/m04kA/SMC-PricingService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-PricingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PricingService/pkg/logger"
	"github.com/m04kA/SMC-PricingService/pkg/metrics"
	"github.com/m04kA/SMC-PricingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-PricingService/pkg/txmanager"
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

	log.Info("Starting SMC-PricingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository   *appointmentRepo.Repository
		instrumentRepository    *instrumentRepo.Repository
		commissionCfgRepository *commissionCfgRepo.Repository
		usageRepository         *usageRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		instrumentRepository = instrumentRepo.NewRepository(wrappedDB)
		commissionCfgRepository = commissionCfgRepo.NewRepository(wrappedDB)
		usageRepository = usageRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		instrumentRepository = instrumentRepo.NewRepository(db)
		commissionCfgRepository = commissionCfgRepo.NewRepository(db)
		usageRepository = usageRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	ledgerSvc := ledger.NewService(usageRepository, &ledger.RealTimeProvider{}, log)
	evaluator := eligibility.NewEvaluator(ledgerSvc)

	strategy := pricing.StrategyBestSingle
	if cfg.Pricing.Strategy != "" {
		strategy = pricing.Strategy(cfg.Pricing.Strategy)
	}
	resolver, err := pricing.NewResolver(strategy)
	if err != nil {
		log.Fatal("Failed to initialize pricing resolver: %v", err)
	}
	log.Info("Pricing resolver initialized (strategy=%s)", strategy)

	calculator := commission.NewCalculator()
	instrumentsSvc := instruments.NewService(instrumentRepository, ledgerSvc, log)
	commissionCfgSvc := commissionCfgService.NewService(commissionCfgRepository, txMgr, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		log,
	)
	confirmAppointmentUseCase := confirmAppointmentUC.NewUseCase(
		appointmentRepository,
		instrumentRepository,
		evaluator,
		resolver,
		ledgerSvc,
		txMgr,
		log,
	)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		commissionCfgRepository,
		calculator,
		txMgr,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		ledgerSvc,
		txMgr,
		log,
	)
	markNoShowUseCase := markNoShowUC.NewUseCase(
		appointmentRepository,
		ledgerSvc,
		txMgr,
		cfg.Policies.ReleaseUsageOnNoShow,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(
		appointmentRepository,
		instrumentRepository,
		evaluator,
		resolver,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(confirmAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	startAppointment := startAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createInstrument := createInstrumentHandler.NewHandler(instrumentsSvc, log)
	getInstrumentUsages := getInstrumentUsagesHandler.NewHandler(instrumentsSvc, log)
	getCommissionConfig := getCommissionConfigHandler.NewHandler(commissionCfgSvc, log)
	updateCommissionConfig := updateCommissionConfigHandler.NewHandler(commissionCfgSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Предварительный расчёт цены, без побочных эффектов
	api.HandleFunc("/appointments/{appointmentId}/quote", quotePrice.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Жизненный цикл записи
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/start", startAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// --- Управление скидочными инструментами (для менеджеров) ---
	protected.HandleFunc("/instruments", createInstrument.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/instruments/{instrumentId}/usages", getInstrumentUsages.Handle).Methods(http.MethodGet)

	// --- Конфигурация комиссии (для менеджеров) ---
	protected.HandleFunc("/services/{serviceId}/commission-config", getCommissionConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}/commission-config", updateCommissionConfig.Handle).Methods(http.MethodPut)

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
