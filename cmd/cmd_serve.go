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

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	addAwayDaysHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/add_away_days"
	barberDayHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/barber_day"
	cancelAppointmentHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/cancel_appointment"
	confirmVerificationHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/confirm_verification"
	createAppointmentHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/get_available_slots"
	listAwayDaysHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/list_away_days"
	listServicesHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/list_services"
	removeAwayDayHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/remove_away_day"
	rescheduleAppointmentHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/reschedule_appointment"
	sendVerificationHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/send_verification"
	staffLoginHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/staff_login"
	staffLogoutHandler "github.com/m04kA/KingsBarber-BookingService/internal/api/handlers/staff_logout"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/session"
	codeStore "github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/verification"
	appointmentRepo "github.com/m04kA/KingsBarber-BookingService/internal/infra/storage/appointment"
	awayDayRepo "github.com/m04kA/KingsBarber-BookingService/internal/infra/storage/awayday"
	"github.com/m04kA/KingsBarber-BookingService/internal/integrations/events"
	"github.com/m04kA/KingsBarber-BookingService/internal/integrations/smsgateway"
	"github.com/m04kA/KingsBarber-BookingService/internal/scheduling"
	appointmentsService "github.com/m04kA/KingsBarber-BookingService/internal/service/appointments"
	authService "github.com/m04kA/KingsBarber-BookingService/internal/service/auth"
	authModels "github.com/m04kA/KingsBarber-BookingService/internal/service/auth/models"
	awayDaysService "github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/notifications"
	verificationService "github.com/m04kA/KingsBarber-BookingService/internal/service/verification"
	createBookingUC "github.com/m04kA/KingsBarber-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/KingsBarber-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/KingsBarber-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/KingsBarber-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/metrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/txmanager"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the booking HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting KingsBarber-BookingService...")

	// Правила салона и каталог проверены при загрузке конфигурации
	schedulingCfg, err := cfg.SchedulingConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.ShopRules()
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	loc := rules.Location

	// Метрики nil-safe: при выключенных метриках передаем nil
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	awayDayRepository := awayDayRepo.NewRepository(wrappedDB)

	// Redis: сессии сотрудников и коды подтверждения телефона
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(cmd.Context(), 5*time.Second)
	err = redisClient.Ping(pingCtx).Err()
	cancelPing()
	if err != nil {
		return fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	sessionStore := session.NewStore(redisClient, time.Duration(cfg.Staff.SessionTTLHours)*time.Hour)
	verificationCodes := codeStore.NewStore(redisClient)

	// Интеграции: SMS шлюз и kafka
	var smsSender notifications.SMSSender = smsgateway.NewLogSender(log.With("sms"))
	if cfg.SMS.Enabled {
		smsSender = smsgateway.NewClient(
			cfg.SMS.URL,
			cfg.SMS.Token,
			cfg.SMS.FromNumber,
			time.Duration(cfg.SMS.Timeout)*time.Second,
			log.With("sms"),
		)
		log.Info("SMS gateway enabled (url=%s, timeout=%ds)", cfg.SMS.URL, cfg.SMS.Timeout)
	}

	var publisher notifications.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	notifier := notifications.NewService(
		smsSender,
		publisher,
		catalog,
		metricsCollector,
		loc,
		cfg.Shop.Name,
		log.With("notifications"),
	)

	// Ядро расписания
	scheduler, err := scheduling.NewScheduler(schedulingCfg)
	if err != nil {
		return err
	}
	guard, err := scheduling.NewGuard(schedulingCfg)
	if err != nil {
		return err
	}

	// Инициализируем сервисы
	verificationSvc := verificationService.NewService(
		verificationCodes,
		notifier,
		verificationService.Options{
			CodeLength:  cfg.Verification.CodeLength,
			CodeTTL:     time.Duration(cfg.Verification.CodeTTLMinutes) * time.Minute,
			VerifiedTTL: time.Duration(cfg.Verification.VerifiedTTLMinutes) * time.Minute,
			MaxAttempts: cfg.Verification.MaxAttempts,
		},
		log.With("verification"),
	)

	accounts := make([]authModels.Account, 0, len(cfg.Staff.Accounts))
	for _, acc := range cfg.Staff.Accounts {
		accounts = append(accounts, authModels.Account{
			Username:     acc.Username,
			PasswordHash: acc.PasswordHash,
			Barber:       acc.Barber,
		})
	}
	authSvc := authService.NewService(accounts, sessionStore, log.With("auth"))

	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalog,
		notifier,
		txMgr,
		loc,
		log.With("appointments"),
	)
	awayDaysSvc := awayDaysService.NewService(
		awayDayRepository,
		catalog,
		txMgr,
		rules,
		log.With("awaydays"),
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		awayDayRepository,
		catalog,
		scheduler,
		rules,
		log.With("get_available_slots"),
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		awayDayRepository,
		catalog,
		guard,
		verificationSvc,
		notifier,
		metricsCollector,
		txMgr,
		rules,
		createBookingUC.Options{
			RequirePhoneVerification: cfg.Booking.RequirePhoneVerification,
			ConfirmationCodeLength:   cfg.Booking.ConfirmationCodeLength,
		},
		log.With("create_booking"),
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		appointmentRepository,
		awayDayRepository,
		guard,
		notifier,
		metricsCollector,
		txMgr,
		rules,
		log.With("reschedule_booking"),
	)

	// Инициализируем handlers
	httpLog := log.With("http")
	listServices := listServicesHandler.NewHandler(catalog, httpLog)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, httpLog)
	createAppointment := createAppointmentHandler.NewHandler(createBookingUseCase, loc, httpLog)
	createWalkIn := createAppointmentHandler.NewWalkInHandler(createBookingUseCase, loc, httpLog)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, httpLog)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleBookingUseCase, loc, httpLog)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, httpLog)
	sendVerification := sendVerificationHandler.NewHandler(verificationSvc, httpLog)
	confirmVerification := confirmVerificationHandler.NewHandler(verificationSvc, httpLog)
	staffLogin := staffLoginHandler.NewHandler(authSvc, httpLog)
	staffLogout := staffLogoutHandler.NewHandler(authSvc, httpLog)
	listAwayDays := listAwayDaysHandler.NewHandler(awayDaysSvc, httpLog)
	addAwayDays := addAwayDaysHandler.NewHandler(awayDaysSvc, httpLog)
	removeAwayDay := removeAwayDayHandler.NewHandler(awayDaysSvc, httpLog)
	barberDay := barberDayHandler.NewHandler(appointmentsSvc, httpLog)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barber}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	api.HandleFunc("/verifications", sendVerification.Handle).Methods(http.MethodPost)
	api.HandleFunc("/verifications/confirm", confirmVerification.Handle).Methods(http.MethodPost)

	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{code}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{code}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{code}", cancelAppointment.Handle).Methods(http.MethodDelete)

	api.HandleFunc("/staff/login", staffLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (Authorization: Bearer <session id>)
	// ============================================================

	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(middleware.Auth(authSvc, httpLog))

	staff.HandleFunc("/logout", staffLogout.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/away-days", listAwayDays.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/away-days", addAwayDays.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/away-days/{date}", removeAwayDay.Handle).Methods(http.MethodDelete)
	staff.HandleFunc("/barbers/{barber}/appointments", barberDay.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/walk-ins", createWalkIn.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s (shop=%q, timezone=%s)", addr, cfg.Shop.Name, loc)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down server...")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
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
	return nil
}
