package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/config"
	"github.com/zapponejosh/amlich-api/internal/holiday"
	"github.com/zapponejosh/amlich-api/internal/sexagenary"
)

// MaxRangeDays bounds /sexagenary/range.
const MaxRangeDays = 62

// HealthChecker reports the health of a backing store.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Services are the core components the handlers serve.
type Services struct {
	Converter  *calendar.Converter
	Calculator *sexagenary.Calculator
	Cache      *sexagenary.Cache
	Resolver   *holiday.Resolver

	// Health is checked by /health; nil when no database is in use.
	Health HealthChecker
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	svc    Services
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc Services, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// writeDomainError writes core errors as 400 with their code and anything
// else as 500.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if code, ok := domainErrorCode(err); ok {
		WriteError(w, http.StatusBadRequest, err.Error(), code)
		return
	}
	h.logger.Error(msg,
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	WriteInternalError(w, msg)
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.svc.Health != nil {
		if err := h.svc.Health.Health(r.Context()); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
			return
		}
	}

	WriteSuccess(w, map[string]any{
		"status":   "healthy",
		"holidays": h.svc.Resolver.Catalog().Len(),
	})
}

// =============================================================================
// Calendar conversion
// =============================================================================

// GetLunarDate handles GET /api/v1/lunar/{YYYY-MM-DD}
func (h *Handlers) GetLunarDate(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}

	lunar := h.svc.Converter.ToLunisolar(date)
	if lunar.Degraded {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("%s is outside %d-%d", calendar.FormatDate(date), calendar.MinYear, calendar.MaxYear),
			CodeOutOfRange)
		return
	}
	WriteSuccess(w, lunarView(lunar))
}

// GetSolarDate handles GET /api/v1/solar?year=&month=&day=&leap=
func (h *Handlers) GetSolarDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var nums [3]int
	for i, name := range []string{"year", "month", "day"} {
		v, err := strconv.Atoi(q.Get(name))
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Query parameter %q must be an integer", name))
			return
		}
		nums[i] = v
	}
	leap := false
	if s := q.Get("leap"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			WriteBadRequest(w, "Query parameter \"leap\" must be a boolean")
			return
		}
		leap = v
	}

	date, err := h.svc.Converter.ToGregorian(nums[0], nums[1], nums[2], leap)
	if err != nil {
		h.writeDomainError(w, r, "Failed to convert lunar date", err)
		return
	}
	WriteSuccess(w, map[string]any{
		"date":    calendar.FormatDate(date),
		"weekday": date.Weekday().String(),
		"lunar":   lunarView(h.svc.Converter.ToLunisolar(date)),
	})
}

// GetMonth handles GET /api/v1/months/{year}/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := parseIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := parseIntParam(w, r, "month")
	if !ok {
		return
	}
	if month < 1 || month > 12 {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("month %d must be 1-12", month), CodeInvalidArgument)
		return
	}

	days, err := h.svc.Converter.MonthInfo(year, time.Month(month))
	if err != nil {
		h.writeDomainError(w, r, "Failed to build month", err)
		return
	}

	views := make([]LunarView, 0, len(days))
	for _, d := range days {
		views = append(views, lunarView(d))
	}
	WriteSuccess(w, map[string]any{
		"year":  year,
		"month": month,
		"days":  views,
	})
}

// =============================================================================
// Sexagenary cycle
// =============================================================================

// GetSexagenaryToday handles GET /api/v1/sexagenary/today
//
// "Today" and the current hour are reckoned in Vietnam time.
func (h *Handlers) GetSexagenaryToday(w http.ResponseWriter, r *http.Request) {
	local := h.now().In(calendar.Location)
	today := calendar.Date(local.Date())

	info, err := h.svc.Cache.Get(today)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute sexagenary info", err)
		return
	}
	view := infoView(info)

	hour, err := sexagenary.HourStemBranch(local.Hour(), info.Day.Stem)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute hour", err)
		return
	}
	hv := pairView(hour)
	view.Hour = &hv

	WriteSuccess(w, view)
}

// GetSexagenary handles GET /api/v1/sexagenary/{YYYY-MM-DD}?time=HH:MM
func (h *Handlers) GetSexagenary(w http.ResponseWriter, r *http.Request) {
	t, ok := parseDateTimeParam(w, r)
	if !ok {
		return
	}

	info, err := h.svc.Cache.Get(t)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute sexagenary info", err)
		return
	}
	WriteSuccess(w, infoView(info))
}

// GetSexagenaryRange handles GET /api/v1/sexagenary/range?start=&end=
func (h *Handlers) GetSexagenaryRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, ok := parseDateParam(w, startStr)
	if !ok {
		return
	}
	end, ok := parseDateParam(w, endStr)
	if !ok {
		return
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxRangeDays {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Range spans %d days; the maximum is %d", days, MaxRangeDays),
			CodeInvalidArgument)
		return
	}

	infos, err := h.svc.Cache.GetRange(start, end)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute sexagenary range", err)
		return
	}

	views := make([]InfoView, 0, len(infos))
	for _, info := range infos {
		views = append(views, infoView(info))
	}
	WriteSuccess(w, views)
}

// GetYear handles GET /api/v1/years/{lunarYear}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, ok := parseIntParam(w, r, "year")
	if !ok {
		return
	}

	leap, err := h.svc.Converter.LeapMonth(year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute year", err)
		return
	}
	tet, err := h.svc.Converter.ToGregorian(year, 1, 1, false)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute year", err)
		return
	}

	info := h.svc.Calculator.YearInfo(year)
	WriteSuccess(w, map[string]any{
		"lunar_year": year,
		"pair":       pairView(info.Pair),
		"zodiac":     zodiacView(info.Zodiac),
		"leap_month": leap,
		"new_year":   calendar.FormatDate(tet),
	})
}

// GetHours handles GET /api/v1/hours/{YYYY-MM-DD}?time=HH:MM
func (h *Handlers) GetHours(w http.ResponseWriter, r *http.Request) {
	t, ok := parseDateTimeParam(w, r)
	if !ok {
		return
	}
	if !calendar.InRange(t.Year()) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("year %d is outside %d-%d", t.Year(), calendar.MinYear, calendar.MaxYear), CodeOutOfRange)
		return
	}

	hours := sexagenary.AllHourBranches(t)
	views := make([]HourView, 0, len(hours))
	for _, hb := range hours {
		views = append(views, HourView{
			PairView: pairView(hb.Pair),
			Window:   hb.Window.String(),
			Start:    hb.Window.Start,
			End:      hb.Window.End,
			Current:  hb.Current && calendar.HasTimeOfDay(t),
		})
	}
	WriteSuccess(w, map[string]any{
		"date":  calendar.FormatDate(t),
		"day":   pairView(sexagenary.DayStemBranch(t)),
		"hours": views,
	})
}

// =============================================================================
// Holidays
// =============================================================================

// ListHolidays handles GET /api/v1/holidays?q=
func (h *Handlers) ListHolidays(w http.ResponseWriter, r *http.Request) {
	defs := h.svc.Resolver.Catalog().Search(r.URL.Query().Get("q"))
	if defs == nil {
		defs = []*holiday.Definition{}
	}
	WriteSuccess(w, defs)
}

// GetHolidaysForYear handles GET /api/v1/holidays/{year}
func (h *Handlers) GetHolidaysForYear(w http.ResponseWriter, r *http.Request) {
	year, ok := parseIntParam(w, r, "year")
	if !ok {
		return
	}

	occ, err := h.svc.Resolver.ForYear(year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve holidays", err)
		return
	}
	WriteSuccess(w, occurrenceViews(occ))
}

// GetHolidaysForMonth handles GET /api/v1/holidays/{year}/{month}
func (h *Handlers) GetHolidaysForMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := parseIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := parseIntParam(w, r, "month")
	if !ok {
		return
	}
	if month < 1 || month > 12 {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("month %d must be 1-12", month), CodeInvalidArgument)
		return
	}

	occ, err := h.svc.Resolver.ForMonth(year, time.Month(month))
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve holidays", err)
		return
	}
	WriteSuccess(w, occurrenceViews(occ))
}

// GetHolidaysICal handles GET /api/v1/holidays/{year}/ical
func (h *Handlers) GetHolidaysICal(w http.ResponseWriter, r *http.Request) {
	year, ok := parseIntParam(w, r, "year")
	if !ok {
		return
	}

	occ, err := h.svc.Resolver.ForYear(year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve holidays", err)
		return
	}

	data, err := holiday.ExportICal(fmt.Sprintf("Ngày lễ Việt Nam %d", year), occ, h.now())
	if err != nil {
		h.logger.Error("failed to export icalendar", slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to export calendar")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"holidays-%d.ics\"", year))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetHolidayForDate handles GET /api/v1/holidays/date/{YYYY-MM-DD}
func (h *Handlers) GetHolidayForDate(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}

	def, err := h.svc.Resolver.ForDate(date)
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve holidays", err)
		return
	}
	if def == nil {
		WriteNotFound(w, fmt.Sprintf("No holiday on %s", calendar.FormatDate(date)))
		return
	}
	WriteSuccess(w, map[string]any{
		"date":    calendar.FormatDate(date),
		"holiday": def,
		"lunar":   lunarView(h.svc.Converter.ToLunisolar(date)),
	})
}

// =============================================================================
// Admin
// =============================================================================

// GetCacheStats handles GET /api/v1/admin/cache
func (h *Handlers) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]int{
		"entries":  h.svc.Cache.Len(),
		"capacity": h.svc.Cache.Capacity(),
	})
}

// ClearCache handles DELETE /api/v1/admin/cache
func (h *Handlers) ClearCache(w http.ResponseWriter, r *http.Request) {
	n := h.svc.Cache.Len()
	h.svc.Cache.Clear()
	h.logger.Info("sexagenary cache cleared", slog.Int("entries", n))
	WriteSuccess(w, map[string]int{"cleared": n})
}

// =============================================================================
// Parameter parsing
// =============================================================================

func parseDateParam(w http.ResponseWriter, s string) (time.Time, bool) {
	date, err := calendar.ParseDateString(s)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", s))
		return time.Time{}, false
	}
	return date, true
}

func parseDateTimeParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := chi.URLParam(r, "date")
	timeStr := r.URL.Query().Get("time")

	t, err := calendar.ParseDateTime(dateStr, timeStr)
	if err != nil {
		var msg string
		if _, derr := calendar.ParseDateString(dateStr); derr != nil {
			msg = fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr)
		} else {
			msg = fmt.Sprintf("Invalid time format: %s. Use HH:MM", timeStr)
		}
		WriteBadRequest(w, msg)
		return time.Time{}, false
	}
	return t, true
}

func parseIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	s := chi.URLParam(r, name)
	v, err := strconv.Atoi(s)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid %s: %q", name, s))
		return 0, false
	}
	return v, true
}
