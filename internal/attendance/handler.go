package attendance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Mark(dto *WriteAttendanceDTO) (*Attendance, error)
	Upsert(dto *WriteAttendanceDTO) (*Attendance, error)
	BulkUpsert(records []WriteAttendanceDTO) ([]*Attendance, int)
	ListByEmployee(employeeID string, dateFrom, dateTo *time.Time) ([]*Attendance, error)
	Summary(employeeID string) (*SummaryResponse, error)
	RosterByDate(date time.Time) (*RosterResponse, error)
	MonthSummary(year, month int) (*MonthSummaryResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var dto WriteAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("MarkAttendance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.Mark(&dto)
	if err != nil {
		h.Logger.Warn("MarkAttendance: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record.ToResponse())
}

func (h *Handler) UpsertAttendance(w http.ResponseWriter, r *http.Request) {
	var dto WriteAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpsertAttendance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.Upsert(&dto)
	if err != nil {
		h.Logger.Warn("UpsertAttendance: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record.ToResponse())
}

func (h *Handler) BulkUpsertAttendance(w http.ResponseWriter, r *http.Request) {
	var dto BulkWriteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("BulkUpsertAttendance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	written, failed := h.Service.BulkUpsert(dto.Records)

	h.WriteJSON(w, http.StatusOK, BulkResponse{
		Success: len(written),
		Failed:  failed,
		Records: toResponses(written),
	})
}

func (h *Handler) GetAttendanceByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		h.Logger.Warn("GetAttendanceByDate: invalid date", "date", dateStr)
		h.WriteError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	roster, svcErr := h.Service.RosterByDate(date)
	if svcErr != nil {
		h.Logger.Error("GetAttendanceByDate: service error", "error", svcErr, "date", dateStr)
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, roster)
}

func (h *Handler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid month")
		return
	}

	summary, svcErr := h.Service.MonthSummary(year, month)
	if svcErr != nil {
		h.Logger.Warn("GetMonthSummary: service error", "error", svcErr, "year", year, "month", month)
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetAttendanceByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	dateFrom, ok := h.optionalDateParam(w, r, "date_from")
	if !ok {
		return
	}
	dateTo, ok := h.optionalDateParam(w, r, "date_to")
	if !ok {
		return
	}

	records, err := h.Service.ListByEmployee(employeeID, dateFrom, dateTo)
	if err != nil {
		h.Logger.Warn("GetAttendanceByEmployee: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Records: toResponses(records),
		Total:   len(records),
	})
}

func (h *Handler) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	summary, err := h.Service.Summary(employeeID)
	if err != nil {
		h.Logger.Warn("GetAttendanceSummary: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// optionalDateParam parses a query date bound; writes a 400 and returns
// ok=false on malformed input.
func (h *Handler) optionalDateParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		h.Logger.Warn("invalid date filter", "param", name, "value", value)
		h.WriteError(w, http.StatusBadRequest, name+" must be formatted as YYYY-MM-DD")
		return nil, false
	}
	return &date, true
}
