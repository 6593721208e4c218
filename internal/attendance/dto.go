package attendance

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

// WriteAttendanceDTO is the payload for both the strict mark and the upsert
// paths; the operation decides what an existing (employee, date) pair means.
type WriteAttendanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// Validate checks structure and range and returns the parsed calendar date
// (UTC midnight). graceDays bounds how far into the future a date may lie.
func (dto *WriteAttendanceDTO) Validate(graceDays int) (time.Time, *errors.AppError) {
	dto.EmployeeID = strings.TrimSpace(dto.EmployeeID)
	dto.Date = strings.TrimSpace(dto.Date)

	if dto.EmployeeID == "" {
		return time.Time{}, errors.NewValidationFieldError("employee_id", "employee_id is required", errors.ErrCodeValidationFailed)
	}
	if dto.Date == "" {
		return time.Time{}, errors.NewValidationFieldError("date", "date is required", errors.ErrCodeValidationFailed)
	}

	date, err := time.ParseInLocation(DateLayout, dto.Date, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewValidationFieldError("date", "date must be formatted as YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}

	if appErr := validation.ValidateAttendanceStatus(dto.Status, Statuses...); appErr != nil {
		return time.Time{}, appErr
	}
	if appErr := validation.ValidateAttendanceDate(date, graceDays); appErr != nil {
		return time.Time{}, appErr
	}

	return date, nil
}

type BulkWriteDTO struct {
	Records []WriteAttendanceDTO `json:"records"`
}

type Response struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListResponse struct {
	Records []Response `json:"records"`
	Total   int        `json:"total"`
}

type BulkResponse struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Records []Response `json:"records"`
}

type SummaryResponse struct {
	EmployeeID  string `json:"employee_id"`
	FullName    string `json:"full_name"`
	TotalDays   int    `json:"total_days"`
	PresentDays int    `json:"present_days"`
	AbsentDays  int    `json:"absent_days"`
}

// RosterEntry is one directory row joined against a single date. Status and
// RecordID are null when the employee was not marked that day.
type RosterEntry struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Department string  `json:"department"`
	Status     *string `json:"status"`
	RecordID   *int64  `json:"record_id"`
}

type RosterResponse struct {
	Date     string        `json:"date"`
	Records  []RosterEntry `json:"records"`
	Present  int           `json:"present"`
	Absent   int           `json:"absent"`
	Unmarked int           `json:"unmarked"`
}

type DaySummary struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type MonthSummaryResponse struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []DaySummary `json:"days"`
}

func toResponses(records []*Attendance) []Response {
	responses := make([]Response, len(records))
	for i, r := range records {
		responses[i] = r.ToResponse()
	}
	return responses
}
