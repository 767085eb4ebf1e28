package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
	// FilesPath is served read-only under FilesURL when both are set.
	FilesPath string
	FilesURL  string
}

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Dashboard    DashboardHandler
	Staff        StaffHandler
	Attendance   AttendanceHandler
	Event        EventHandler
	Transaction  TransactionHandler
	Client       ClientHandler
	Bill         BillHandler
	Reminder     ReminderHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Archive-URL"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.FilesPath != "" && strings.HasPrefix(cfg.FilesURL, "/") {
		prefix := strings.TrimSuffix(cfg.FilesURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.FilesPath))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// EventSource cannot send headers; the stream checks its own query token.
		r.Get("/realtime/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/session", h.Auth.Session)
			})

			r.Get("/dashboard", h.Dashboard.Overview)
			r.Get("/realtime/token", h.Notification.GetSSEToken)

			r.Route("/users", func(r chi.Router) {
				r.Put("/me/password", h.User.ChangePassword)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
				})
			})

			r.Route("/staff", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionStaffView)).Get("/", h.Staff.List)
				r.With(middleware.RequirePermission(user.PermissionStaffView)).Get("/{id}", h.Staff.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionStaffManage))
					r.Post("/", h.Staff.Create)
					r.Put("/{id}", h.Staff.Update)
					r.Delete("/{id}", h.Staff.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceRecord)).Post("/records", h.Attendance.Record)
				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Delete("/records/{id}", h.Attendance.DeleteRecord)
				r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/report/export", h.Report.ExportAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
					r.Get("/records", h.Attendance.ListRecords)
					r.Get("/today", h.Attendance.Today)
					r.Get("/daily", h.Attendance.Daily)
					r.Get("/report", h.Attendance.Report)
					r.Get("/staff/{id}", h.Attendance.StaffReport)
					r.Get("/staff/{id}/hours", h.Attendance.HoursWorked)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionCalendarView)).Get("/", h.Event.List)
				r.With(middleware.RequirePermission(user.PermissionCalendarView)).Get("/{id}", h.Event.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCalendarManage))
					r.Post("/", h.Event.Create)
					r.Put("/{id}", h.Event.Update)
					r.Delete("/{id}", h.Event.Delete)
					r.Patch("/{id}/done", h.Event.SetDone)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionCalendarView))
				r.Get("/grid", h.Event.Grid)
				r.Get("/grid/export", h.Report.ExportCalendar)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLedgerManage))
				r.Get("/", h.Transaction.List)
				r.Post("/", h.Transaction.Create)
				r.Get("/summary", h.Transaction.Summary)
				r.Get("/export", h.Report.ExportTransactions)
				r.Get("/{id}", h.Transaction.Get)
				r.Put("/{id}", h.Transaction.Update)
				r.Delete("/{id}", h.Transaction.Delete)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionClientManage))
				r.Get("/", h.Client.List)
				r.Post("/", h.Client.Create)
				r.Get("/{id}", h.Client.Get)
				r.Put("/{id}", h.Client.Update)
				r.Delete("/{id}", h.Client.Delete)
			})

			r.Route("/bills", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionBillManage))
				r.Get("/", h.Bill.List)
				r.Post("/", h.Bill.Create)
				r.Get("/reminders", h.Bill.Reminders)
				r.Get("/{id}", h.Bill.Get)
				r.Put("/{id}", h.Bill.Update)
				r.Delete("/{id}", h.Bill.Delete)
				r.Post("/{id}/sent", h.Bill.MarkSent)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReminderManage))
				r.Get("/", h.Reminder.List)
				r.Post("/", h.Reminder.Create)
				r.Delete("/{id}", h.Reminder.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read-all", h.Notification.MarkAllRead)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsExport))
				r.Get("/", h.Report.ListArchive)
				r.Get("/{name}", h.Report.DownloadArchived)
			})
		})
	})
	return r
}
