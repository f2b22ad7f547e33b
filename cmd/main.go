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
	"github.com/redis/go-redis/v9"

	assignEmployeeHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/assign_employee"
	cancelBookingHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/create_booking"
	createInvoiceHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/create_invoice"
	createLeaveHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/create_leave"
	createQuoteHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/create_quote"
	decideQuoteHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/decide_quote"
	downloadInvoicePDFHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/download_invoice_pdf"
	getBookingHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/get_booking"
	getCalendarDataHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/get_calendar_data"
	getInvoiceHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/get_invoice"
	getLeaveHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/get_leave"
	getQuoteHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/get_quote"
	getUserBookingsHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_bookings"
	listEmployeesHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_employees"
	listInvoicesHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_invoices"
	listLeavesHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_leaves"
	listQuotesHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_quotes"
	listServicesHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_services"
	listSlotConfigsHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/list_slot_configs"
	loginUserHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/login_user"
	registerUserHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/register_user"
	reviewLeaveHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/review_leave"
	reviewQuoteHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/review_quote"
	updateBookingStatusHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/update_booking_status"
	updateInvoiceStatusHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/update_invoice_status"
	upsertSlotConfigHandler "github.com/m04kA/SMC-WheelShopService/internal/api/handlers/upsert_slot_config"
	"github.com/m04kA/SMC-WheelShopService/internal/api/middleware"
	"github.com/m04kA/SMC-WheelShopService/internal/auth"
	"github.com/m04kA/SMC-WheelShopService/internal/config"
	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/catalog"
	invoiceRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/invoice"
	leaveRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/leave"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	quoteRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/quote"
	slotconfigRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/slotconfig"
	userRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/user"
	"github.com/m04kA/SMC-WheelShopService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-WheelShopService/internal/integrations/mailer"
	"github.com/m04kA/SMC-WheelShopService/internal/integrations/pdfgen"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
	bookingsService "github.com/m04kA/SMC-WheelShopService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-WheelShopService/internal/service/catalog"
	invoicesService "github.com/m04kA/SMC-WheelShopService/internal/service/invoices"
	leavesService "github.com/m04kA/SMC-WheelShopService/internal/service/leaves"
	quotesService "github.com/m04kA/SMC-WheelShopService/internal/service/quotes"
	slotconfigsService "github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs"
	usersService "github.com/m04kA/SMC-WheelShopService/internal/service/users"
	checkAvailabilityUC "github.com/m04kA/SMC-WheelShopService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-WheelShopService/internal/usecase/create_booking"
	getCalendarDataUC "github.com/m04kA/SMC-WheelShopService/internal/usecase/get_calendar_data"
	"github.com/m04kA/SMC-WheelShopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WheelShopService/pkg/logger"
	"github.com/m04kA/SMC-WheelShopService/pkg/metrics"
	"github.com/m04kA/SMC-WheelShopService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WheelShopService/pkg/txmanager"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// bookingStorage объединяет методы хранилища бронирований, используемые сервисами и use case
type bookingStorage interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ListForSlot(ctx context.Context, key domain.SlotKey) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	AssignEmployee(ctx context.Context, id int64, employeeID int64) error
	Cancel(ctx context.Context, id int64, reason string) error
}

type catalogStorage interface {
	GetByID(ctx context.Context, id int64) (*domain.ShopService, error)
	ListActive(ctx context.Context) ([]*domain.ShopService, error)
}

type slotConfigStorage interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlotConfig, error)
	Upsert(ctx context.Context, cfg *domain.TimeSlotConfig) (*domain.TimeSlotConfig, error)
	ListRange(ctx context.Context, start, end time.Time) ([]*domain.TimeSlotConfig, error)
}

type userStorage interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error)
}

type quoteStorage interface {
	Create(ctx context.Context, q *domain.Quote) (*domain.Quote, error)
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)
	List(ctx context.Context, userID *int64, status *domain.QuoteStatus) ([]*domain.Quote, error)
	Review(ctx context.Context, id int64, status domain.QuoteStatus, price *float64, adminNotes *string) error
}

type invoiceStorage interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	List(ctx context.Context, userID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error
}

type leaveStorage interface {
	Create(ctx context.Context, l *domain.LeaveRequest) (*domain.LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	List(ctx context.Context, employeeID *int64, status *domain.LeaveStatus) ([]*domain.LeaveRequest, error)
	Review(ctx context.Context, id int64, status domain.LeaveStatus, reviewedBy int64) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SMC-WheelShopService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочий день мастерской: сетка слотов из конфигурации
	dayStart, err := types.NewTimeStringFromString(cfg.Booking.DayStart)
	if err != nil {
		log.Fatal("Invalid booking.day_start: %v", err)
	}
	dayEnd, err := types.NewTimeStringFromString(cfg.Booking.DayEnd)
	if err != nil {
		log.Fatal("Invalid booking.day_end: %v", err)
	}
	dayLabels, err := domain.SlotLabels(dayStart, dayEnd, cfg.Booking.SlotStepMinutes)
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}
	log.Info("Working day slot grid: %s-%s step %dm (%d slots)",
		cfg.Booking.DayStart, cfg.Booking.DayEnd, cfg.Booking.SlotStepMinutes, len(dayLabels))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище: postgres или in-memory по database.driver
	var (
		bookingStore    bookingStorage
		catalogStore    catalogStorage
		slotConfigStore slotConfigStorage
		userStore       userStorage
		quoteStore      quoteStorage
		invoiceStore    invoiceStorage
		leaveStore      leaveStorage
		txMgr           txManager
	)

	if cfg.Database.InMemory() {
		store := memory.NewStore()
		bookingStore = memory.NewBookingStore(store)
		catalogStore = memory.NewCatalogStore(store)
		slotConfigStore = memory.NewSlotConfigStore(store)
		userStore = memory.NewUserStore(store)
		quoteStore = memory.NewQuoteStore(store)
		invoiceStore = memory.NewInvoiceStore(store)
		leaveStore = memory.NewLeaveStore(store)
		txMgr = memory.NewTxManager()
		log.Info("Using in-memory storage (database.driver=memory)")
	} else {
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
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			bookingStore = bookingRepo.NewRepository(wrappedDB)
			catalogStore = catalogRepo.NewRepository(wrappedDB)
			slotConfigStore = slotconfigRepo.NewRepository(wrappedDB)
			userStore = userRepo.NewRepository(wrappedDB)
			quoteStore = quoteRepo.NewRepository(wrappedDB)
			invoiceStore = invoiceRepo.NewRepository(wrappedDB)
			leaveStore = leaveRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			bookingStore = bookingRepo.NewRepository(db)
			catalogStore = catalogRepo.NewRepository(db)
			slotConfigStore = slotconfigRepo.NewRepository(db)
			userStore = userRepo.NewRepository(db)
			quoteStore = quoteRepo.NewRepository(db)
			invoiceStore = invoiceRepo.NewRepository(db)
			leaveStore = leaveRepo.NewRepository(db)
			txMgr = simpletxmanager.NewTransactionManager(db)
		}
	}

	// Инициализируем интеграции
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTLMinutes)

	mail := mailer.New(cfg.SMTP.Enabled, cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password, log)

	publisher := queue.NewPublisher(cfg.RabbitMQ.Enabled, cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, mail, log)
	defer publisher.Close()

	calendarClient := gcalendar.NewClient(
		cfg.GCal.Enabled,
		cfg.GCal.ClientID,
		cfg.GCal.ClientSecret,
		cfg.GCal.RefreshToken,
		cfg.GCal.CalendarID,
		time.Duration(cfg.GCal.Timeout)*time.Second,
		log,
	)

	pdfRenderer := pdfgen.NewRenderer("SMC Wheel Shop", cfg.Auth.JWTSecret)

	// Consumer уведомлений: читает очередь и отправляет письма
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if cfg.RabbitMQ.Enabled {
		consumer := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, mail, log)
		go consumer.Run(consumerCtx)
		log.Info("Notification consumer started (queue=%s)", cfg.RabbitMQ.Queue)
	}

	// Инициализируем сервисы
	userSvc := usersService.NewService(userStore, tokenManager, cfg.Auth.BcryptCost, log)
	catalogSvc := catalogService.NewService(catalogStore, log)
	bookingSvc := bookingsService.NewService(bookingStore, userStore, publisher, log)
	slotConfigSvc := slotconfigsService.NewService(slotConfigStore, dayLabels, log)
	quoteSvc := quotesService.NewService(quoteStore, catalogStore, userStore, publisher, log)
	invoiceSvc := invoicesService.NewService(invoiceStore, bookingStore, userStore, pdfRenderer, publisher, &invoicesService.RealTimeProvider{}, log)
	leaveSvc := leavesService.NewService(leaveStore, userStore, publisher, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingStore,
		slotConfigSvc,
		catalogStore,
		userStore,
		publisher,
		txMgr,
		dayLabels,
		cfg.Booking.EnforceAdmission,
		log,
	).WithCalendarSync(calendarClient)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingStore,
		slotConfigSvc,
		dayLabels,
		log,
	)

	getCalendarDataUseCase := getCalendarDataUC.NewUseCase(
		bookingStore,
		slotConfigStore,
		dayLabels,
		log,
	)

	// Инициализируем handlers
	registerUser := registerUserHandler.NewHandler(userSvc, log)
	loginUser := loginUserHandler.NewHandler(userSvc, log)
	listEmployees := listEmployeesHandler.NewHandler(userSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	assignEmployee := assignEmployeeHandler.NewHandler(bookingSvc, log)
	createQuote := createQuoteHandler.NewHandler(quoteSvc, log)
	getQuote := getQuoteHandler.NewHandler(quoteSvc, log)
	listQuotes := listQuotesHandler.NewHandler(quoteSvc, log)
	reviewQuote := reviewQuoteHandler.NewHandler(quoteSvc, log)
	decideQuote := decideQuoteHandler.NewHandler(quoteSvc, log)
	createInvoice := createInvoiceHandler.NewHandler(invoiceSvc, log)
	getInvoice := getInvoiceHandler.NewHandler(invoiceSvc, log)
	listInvoices := listInvoicesHandler.NewHandler(invoiceSvc, log)
	updateInvoiceStatus := updateInvoiceStatusHandler.NewHandler(invoiceSvc, log)
	downloadInvoicePDF := downloadInvoicePDFHandler.NewHandler(invoiceSvc, log)
	createLeave := createLeaveHandler.NewHandler(leaveSvc, log)
	getLeave := getLeaveHandler.NewHandler(leaveSvc, log)
	listLeaves := listLeavesHandler.NewHandler(leaveSvc, log)
	reviewLeave := reviewLeaveHandler.NewHandler(leaveSvc, log)
	getCalendarData := getCalendarDataHandler.NewHandler(getCalendarDataUseCase, log)
	upsertSlotConfig := upsertSlotConfigHandler.NewHandler(slotConfigSvc, log)
	listSlotConfigs := listSlotConfigsHandler.NewHandler(slotConfigSvc, log)

	// Redis: response cache и rate limiting (опционально)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		log.Info("Redis connected (addr=%s)", cfg.Redis.Addr)
	}

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

	// Rate limiting и кеш ответов подключаются поштучно (если Redis включен)
	limit := func(h http.Handler) http.Handler { return h }
	cache := func(h http.Handler) http.Handler { return h }
	if rdb != nil {
		limit = middleware.RateLimit(rdb, cfg.Redis.RateLimitRequests,
			time.Duration(cfg.Redis.RateLimitWindow)*time.Second, log)
		log.Info("Rate limiting enabled (%d requests per %ds)",
			cfg.Redis.RateLimitRequests, cfg.Redis.RateLimitWindow)

		if cfg.Redis.CacheTTLSeconds > 0 {
			cache = middleware.ResponseCache(rdb,
				time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second, log)
			log.Info("Response cache enabled (ttl=%ds)", cfg.Redis.CacheTTLSeconds)
		}
	}

	// Регистрация и вход
	api.Handle("/auth/register", limit(http.HandlerFunc(registerUser.Handle))).Methods(http.MethodPost)
	api.Handle("/auth/login", limit(http.HandlerFunc(loginUser.Handle))).Methods(http.MethodPost)

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступность слотов на дату
	api.Handle("/availability", cache(http.HandlerFunc(checkAvailability.Handle))).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenManager))

	// Ролевые ограничения навешиваются на конкретные маршруты
	staffOnly := func(h http.HandlerFunc) http.Handler { return middleware.RequireStaff(h) }
	adminOnly := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }

	// --- Бронирования ---
	protected.Handle("/bookings", limit(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.Handle("/bookings", staffOnly(listBookings.Handle)).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/status", staffOnly(updateBookingStatus.Handle)).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/assignee", staffOnly(assignEmployee.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Запросы на расчёт стоимости ---
	protected.HandleFunc("/quotes", createQuote.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/quotes", listQuotes.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/quotes/{quoteId}", getQuote.Handle).Methods(http.MethodGet)
	protected.Handle("/quotes/{quoteId}/review", adminOnly(reviewQuote.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/quotes/{quoteId}/decision", decideQuote.Handle).Methods(http.MethodPatch)

	// --- Счета ---
	protected.Handle("/invoices", adminOnly(createInvoice.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/invoices", listInvoices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{invoiceId}", getInvoice.Handle).Methods(http.MethodGet)
	protected.Handle("/invoices/{invoiceId}/status", adminOnly(updateInvoiceStatus.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/invoices/{invoiceId}/pdf", downloadInvoicePDF.Handle).Methods(http.MethodGet)

	// --- Заявки на отпуск ---
	protected.Handle("/leaves", staffOnly(createLeave.Handle)).Methods(http.MethodPost)
	protected.Handle("/leaves", staffOnly(listLeaves.Handle)).Methods(http.MethodGet)
	protected.Handle("/leaves/{leaveId}", staffOnly(getLeave.Handle)).Methods(http.MethodGet)
	protected.Handle("/leaves/{leaveId}/review", adminOnly(reviewLeave.Handle)).Methods(http.MethodPatch)

	// --- Администрирование ---
	protected.Handle("/employees", adminOnly(listEmployees.Handle)).Methods(http.MethodGet)
	protected.Handle("/admin/calendar-data",
		middleware.RequireAdmin(cache(http.HandlerFunc(getCalendarData.Handle)))).Methods(http.MethodGet)
	protected.Handle("/admin/time-slot-configs", adminOnly(upsertSlotConfig.Handle)).Methods(http.MethodPost, http.MethodPut)
	protected.Handle("/admin/time-slot-configs", adminOnly(listSlotConfigs.Handle)).Methods(http.MethodGet)

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

	// Останавливаем consumer уведомлений
	stopConsumer()

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
