package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/config"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/realtime"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/backoffice-backend-go/internal/service/auth"
	billService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/bill"
	calendarService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/calendar"
	clientService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/client"
	dashboardService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/dashboard"
	ledgerService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/ledger"
	notificationService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/notification"
	reminderService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/reminder"
	reportService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/report"
	staffService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/staff"
	userService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/user"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	billRepo := postgresql.NewBillRepository(db)
	reminderRepo := postgresql.NewReminderRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	aggregator := attendanceService.NewAggregator(
		timeofday.MustParse(cfg.Attendance.LateCutoff),
		attendance.AbsentPolicy(cfg.Attendance.AbsentPolicy),
	)

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo, staffRepo)
	staffSvc := staffService.NewStaffService(staffRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, staffRepo, aggregator, loc)
	eventSvc := calendarService.NewEventService(eventRepo, loc)
	transactionSvc := ledgerService.NewTransactionService(transactionRepo, loc)
	clientSvc := clientService.NewClientService(clientRepo)
	billSvc := billService.NewBillService(billRepo, clientRepo, loc)
	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	reminderSvc := reminderService.NewReminderService(reminderRepo, notificationRepo, transactor, loc)
	reportSvc := reportService.NewReportService(attendanceSvc, transactionSvc, eventSvc, fileStorage, loc)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, eventSvc, notificationSvc, billSvc, transactionSvc, loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Admin.Username != "" {
		if err := userSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			slog.Error("Failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	hub := sse.NewHub()
	go realtime.NewListener(db, hub).Run(ctx)

	scheduler := cron.NewScheduler(ctx)
	cron.NewReminderJobs(reminderSvc).RegisterJobs(scheduler, cfg.Reminder.PollInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		FilesPath:      cfg.Storage.BasePath,
		FilesURL:       cfg.Storage.BaseURL,
	}, JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Staff:        appHTTP.NewStaffHandler(staffSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Event:        appHTTP.NewEventHandler(eventSvc),
		Transaction:  appHTTP.NewTransactionHandler(transactionSvc),
		Client:       appHTTP.NewClientHandler(clientSvc),
		Bill:         appHTTP.NewBillHandler(billSvc),
		Reminder:     appHTTP.NewReminderHandler(reminderSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, reminderSvc, JWTService, hub),
		Report:       appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
