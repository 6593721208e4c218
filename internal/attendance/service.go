package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	apperrors "github.com/frahmantamala/attendance-management/internal"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"gorm.io/gorm"
)

// RepositoryAPI defines the data access methods for attendance records.
// FindByEmployeeAndDate returns (nil, nil) when no record exists.
type RepositoryAPI interface {
	Create(record *attendanceDatamodel.Attendance) error
	UpdateStatus(id int64, status string) error
	GetByID(id int64) (*attendanceDatamodel.Attendance, error)
	FindByEmployeeAndDate(employeeID string, date time.Time) (*attendanceDatamodel.Attendance, error)
	ListByEmployee(employeeID string, dateFrom, dateTo *time.Time) ([]*attendanceDatamodel.Attendance, error)
	ListByDate(date time.Time) ([]*attendanceDatamodel.Attendance, error)
	ListByDateRange(from, to time.Time) ([]*attendanceDatamodel.Attendance, error)
	CountByDateAndStatus(date time.Time, status string) (int64, error)
}

// Directory is the slice of the employee repository the ledger needs:
// existence checks and the full roster.
type Directory interface {
	GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
	GetAll() ([]*employeeDatamodel.Employee, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo            RepositoryAPI
	directory       Directory
	eventBus        EventPublisher
	logger          *slog.Logger
	futureGraceDays int
}

func NewService(repo RepositoryAPI, directory Directory, eventBus EventPublisher, logger *slog.Logger, futureGraceDays int) *Service {
	return &Service{
		repo:            repo,
		directory:       directory,
		eventBus:        eventBus,
		logger:          logger,
		futureGraceDays: futureGraceDays,
	}
}

func (s *Service) requireEmployee(employeeID string) (*employeeDatamodel.Employee, error) {
	emp, err := s.directory.GetByEmployeeID(employeeID)
	if err != nil {
		s.logger.Error("failed to look up employee", "error", err, "employee_id", employeeID)
		return nil, apperrors.NewInternalError("failed to look up employee", err)
	}
	if emp == nil {
		return nil, apperrors.EmployeeNotFoundError(employeeID)
	}
	return emp, nil
}

// Mark records attendance strictly: an existing record for the same
// (employee, date) is a conflict, never an overwrite.
func (s *Service) Mark(dto *WriteAttendanceDTO) (*Attendance, error) {
	date, appErr := dto.Validate(s.futureGraceDays)
	if appErr != nil {
		s.logger.Warn("mark validation failed", "error", appErr, "employee_id", dto.EmployeeID)
		return nil, appErr
	}

	if _, err := s.requireEmployee(dto.EmployeeID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmployeeAndDate(dto.EmployeeID, date)
	if err != nil {
		s.logger.Error("failed to check existing attendance", "error", err, "employee_id", dto.EmployeeID)
		return nil, apperrors.NewInternalError("failed to mark attendance", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateAttendanceError(dto.EmployeeID, dto.Date)
	}

	record := &attendanceDatamodel.Attendance{
		EmployeeID: dto.EmployeeID,
		Date:       date,
		Status:     dto.Status,
	}
	if err := s.repo.Create(record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// concurrent writer won the insert; the unique constraint is
			// the invariant's source of truth
			return nil, apperrors.DuplicateAttendanceError(dto.EmployeeID, dto.Date)
		}
		s.logger.Error("failed to create attendance record", "error", err, "employee_id", dto.EmployeeID)
		return nil, apperrors.NewInternalError("failed to mark attendance", err)
	}

	s.logger.Info("attendance marked",
		"employee_id", record.EmployeeID,
		"date", dto.Date,
		"status", record.Status)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(),
			events.NewAttendanceMarkedEvent(record.EmployeeID, dto.Date, record.Status))
	}

	return FromDataModel(record), nil
}

// Upsert inserts the record or overwrites the status of an existing one.
// Re-applying the same status is a no-op in effect; the operation never
// raises a uniqueness conflict by construction.
func (s *Service) Upsert(dto *WriteAttendanceDTO) (*Attendance, error) {
	date, appErr := dto.Validate(s.futureGraceDays)
	if appErr != nil {
		s.logger.Warn("upsert validation failed", "error", appErr, "employee_id", dto.EmployeeID)
		return nil, appErr
	}

	if _, err := s.requireEmployee(dto.EmployeeID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmployeeAndDate(dto.EmployeeID, date)
	if err != nil {
		s.logger.Error("failed to check existing attendance", "error", err, "employee_id", dto.EmployeeID)
		return nil, apperrors.NewInternalError("failed to upsert attendance", err)
	}

	if existing == nil {
		record := &attendanceDatamodel.Attendance{
			EmployeeID: dto.EmployeeID,
			Date:       date,
			Status:     dto.Status,
		}
		err := s.repo.Create(record)
		if err == nil {
			s.publishUpserted(record.EmployeeID, dto.Date, record.Status)
			return FromDataModel(record), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Error("failed to insert attendance record", "error", err, "employee_id", dto.EmployeeID)
			return nil, apperrors.NewInternalError("failed to upsert attendance", err)
		}
		// lost an insert race; fall through to the overwrite path
		existing, err = s.repo.FindByEmployeeAndDate(dto.EmployeeID, date)
		if err != nil || existing == nil {
			s.logger.Error("failed to reload attendance after insert race", "error", err, "employee_id", dto.EmployeeID)
			return nil, apperrors.NewInternalError("failed to upsert attendance", err)
		}
	}

	if err := s.repo.UpdateStatus(existing.ID, dto.Status); err != nil {
		s.logger.Error("failed to update attendance status", "error", err, "record_id", existing.ID)
		return nil, apperrors.NewInternalError("failed to upsert attendance", err)
	}
	existing.Status = dto.Status

	s.publishUpserted(existing.EmployeeID, dto.Date, existing.Status)
	return FromDataModel(existing), nil
}

func (s *Service) publishUpserted(employeeID, date, status string) {
	s.logger.Info("attendance upserted", "employee_id", employeeID, "date", date, "status", status)
	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(),
			events.NewAttendanceUpsertedEvent(employeeID, date, status))
	}
}

// BulkUpsert applies Upsert to each record independently. One bad row never
// voids the batch: failures are counted and logged, not surfaced per item.
func (s *Service) BulkUpsert(records []WriteAttendanceDTO) ([]*Attendance, int) {
	written := make([]*Attendance, 0, len(records))
	failed := 0

	for i := range records {
		record, err := s.Upsert(&records[i])
		if err != nil {
			failed++
			s.logger.Warn("bulk upsert item failed",
				"index", i,
				"employee_id", records[i].EmployeeID,
				"date", records[i].Date,
				"error", err)
			continue
		}
		written = append(written, record)
	}

	s.logger.Info("bulk upsert finished", "success", len(written), "failed", failed)
	return written, failed
}

// ListByEmployee returns the employee's records ordered by date descending,
// optionally bounded by inclusive from/to dates.
func (s *Service) ListByEmployee(employeeID string, dateFrom, dateTo *time.Time) ([]*Attendance, error) {
	if _, err := s.requireEmployee(employeeID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByEmployee(employeeID, dateFrom, dateTo)
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err, "employee_id", employeeID)
		return nil, apperrors.NewInternalError("failed to list attendance", err)
	}
	return FromDataModelSlice(records), nil
}

// Summary counts the employee's records. Absent is an exact match on the
// Absent status so future status values are never silently reclassified.
func (s *Service) Summary(employeeID string) (*SummaryResponse, error) {
	emp, err := s.requireEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByEmployee(employeeID, nil, nil)
	if err != nil {
		s.logger.Error("failed to load records for summary", "error", err, "employee_id", employeeID)
		return nil, apperrors.NewInternalError("failed to build attendance summary", err)
	}

	summary := &SummaryResponse{
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		TotalDays:  len(records),
	}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusAbsent:
			summary.AbsentDays++
		}
	}
	return summary, nil
}

// RosterByDate joins the whole directory against one date: every current
// employee appears exactly once, unmarked ones with null status and id.
func (s *Service) RosterByDate(date time.Time) (*RosterResponse, error) {
	employees, err := s.directory.GetAll()
	if err != nil {
		s.logger.Error("failed to load directory for roster", "error", err)
		return nil, apperrors.NewInternalError("failed to build roster", err)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].EmployeeID < employees[j].EmployeeID
	})

	records, err := s.repo.ListByDate(date)
	if err != nil {
		s.logger.Error("failed to load attendance for roster", "error", err, "date", date.Format(DateLayout))
		return nil, apperrors.NewInternalError("failed to build roster", err)
	}
	byEmployee := make(map[string]*attendanceDatamodel.Attendance, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	roster := &RosterResponse{
		Date:    date.Format(DateLayout),
		Records: make([]RosterEntry, 0, len(employees)),
	}
	for _, emp := range employees {
		entry := RosterEntry{
			EmployeeID: emp.EmployeeID,
			FullName:   emp.FullName,
			Department: emp.Department,
		}
		if record, ok := byEmployee[emp.EmployeeID]; ok {
			status := record.Status
			recordID := record.ID
			entry.Status = &status
			entry.RecordID = &recordID
			switch record.Status {
			case StatusPresent:
				roster.Present++
			case StatusAbsent:
				roster.Absent++
			}
		} else {
			roster.Unmarked++
		}
		roster.Records = append(roster.Records, entry)
	}

	return roster, nil
}

// MonthSummary buckets the month's records by exact date and reports
// present/absent counts for dates that have at least one record, ascending.
// Record-free days are omitted: the calendar is sparse, densifying it is the
// consumer's concern.
func (s *Service) MonthSummary(year, month int) (*MonthSummaryResponse, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("month must be between 1 and 12, got %d", month), apperrors.ErrCodeInvalidMonth)
	}
	if year < 1 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid year %d", year), apperrors.ErrCodeInvalidMonth)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := s.repo.ListByDateRange(first, last)
	if err != nil {
		s.logger.Error("failed to load month records", "error", err, "year", year, "month", month)
		return nil, apperrors.NewInternalError("failed to build month summary", err)
	}

	result := &MonthSummaryResponse{
		Year:  year,
		Month: month,
		Days:  make([]DaySummary, 0),
	}
	index := make(map[string]int)
	for _, r := range records {
		key := r.Date.Format(DateLayout)
		i, ok := index[key]
		if !ok {
			i = len(result.Days)
			index[key] = i
			result.Days = append(result.Days, DaySummary{Date: key})
		}
		switch r.Status {
		case StatusPresent:
			result.Days[i].Present++
		case StatusAbsent:
			result.Days[i].Absent++
		}
	}
	sort.Slice(result.Days, func(i, j int) bool {
		return result.Days[i].Date < result.Days[j].Date
	})

	return result, nil
}
