package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/amlich-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/lunar/{date}
//	GET    /api/v1/solar?year=&month=&day=&leap=
//	GET    /api/v1/months/{year}/{month}
//	GET    /api/v1/sexagenary/today
//	GET    /api/v1/sexagenary/range?start=&end=
//	GET    /api/v1/sexagenary/{date}?time=HH:MM
//	GET    /api/v1/years/{year}
//	GET    /api/v1/hours/{date}?time=HH:MM
//	GET    /api/v1/holidays?q=
//	GET    /api/v1/holidays/date/{date}
//	GET    /api/v1/holidays/{year}
//	GET    /api/v1/holidays/{year}/ical
//	GET    /api/v1/holidays/{year}/{month}
//	GET    /api/v1/admin/cache           (X-API-Key)
//	DELETE /api/v1/admin/cache           (X-API-Key)
func SetupRoutes(h *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Calendar conversion
		// ======================================================================
		r.Get("/lunar/{date}", h.GetLunarDate)
		r.Get("/solar", h.GetSolarDate)
		r.Get("/months/{year}/{month}", h.GetMonth)

		// ======================================================================
		// Sexagenary cycle
		// ======================================================================
		r.Get("/sexagenary/today", h.GetSexagenaryToday)
		r.Get("/sexagenary/range", h.GetSexagenaryRange)
		r.Get("/sexagenary/{date}", h.GetSexagenary)
		r.Get("/years/{year}", h.GetYear)
		r.Get("/hours/{date}", h.GetHours)

		// ======================================================================
		// Holidays
		// ======================================================================
		r.Get("/holidays", h.ListHolidays)
		r.Get("/holidays/date/{date}", h.GetHolidayForDate)
		r.Get("/holidays/{year}", h.GetHolidaysForYear)
		r.Get("/holidays/{year}/ical", h.GetHolidaysICal)
		r.Get("/holidays/{year}/{month}", h.GetHolidaysForMonth)

		// ======================================================================
		// Admin routes (API key only)
		// ======================================================================
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminKeyMiddleware(cfg, logger))
			r.Get("/cache", h.GetCacheStats)
			r.Delete("/cache", h.ClearCache)
		})
	})

	return r
}
