package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/dashboard"
	"github.com/frahmantamala/attendance-management/internal/employee"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, employeeHandler *employee.Handler, attendanceHandler *attendance.Handler, dashboardHandler *dashboard.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(allowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// API document at root, swagger UI alongside
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if employeeHandler != nil {
			r.Route("/employees", func(er chi.Router) {
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/", employeeHandler.ListEmployees)
				er.Get("/{employee_id}", employeeHandler.GetEmployee)
				er.Delete("/{employee_id}", employeeHandler.DeleteEmployee)
			})
		}

		if attendanceHandler != nil {
			r.Route("/attendance", func(ar chi.Router) {
				ar.Post("/", attendanceHandler.MarkAttendance)
				ar.Put("/", attendanceHandler.UpsertAttendance)
				ar.Post("/bulk", attendanceHandler.BulkUpsertAttendance)
				ar.Get("/date/{date}", attendanceHandler.GetAttendanceByDate)
				ar.Get("/calendar/{year}/{month}", attendanceHandler.GetMonthSummary)
				ar.Get("/{employee_id}", attendanceHandler.GetAttendanceByEmployee)
				ar.Get("/{employee_id}/summary", attendanceHandler.GetAttendanceSummary)
			})
		}

		if dashboardHandler != nil {
			r.Get("/dashboard", dashboardHandler.GetDashboard)
		}
	})
}

func splitOrigins(allowedOrigins string) []string {
	if allowedOrigins == "" {
		return []string{"*"}
	}
	parts := strings.Split(allowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
