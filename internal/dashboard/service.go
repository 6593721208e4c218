package dashboard

import (
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
)

// EmployeeCounter and AttendanceCounter are the stats the snapshot needs,
// satisfied by the employee and attendance repositories.
type EmployeeCounter interface {
	Count() (int64, error)
}

type AttendanceCounter interface {
	CountByDateAndStatus(date time.Time, status string) (int64, error)
}

type Snapshot struct {
	TotalEmployees int64 `json:"total_employees"`
	PresentToday   int64 `json:"present_today"`
	AbsentToday    int64 `json:"absent_today"`
	UnmarkedToday  int64 `json:"unmarked_today"`
}

type Service struct {
	employees EmployeeCounter
	records   AttendanceCounter
	location  *time.Location
	logger    *slog.Logger
}

func NewService(employees EmployeeCounter, records AttendanceCounter, location *time.Location, logger *slog.Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		employees: employees,
		records:   records,
		location:  location,
		logger:    logger,
	}
}

// Today returns the live counts for the current calendar date in the
// configured timezone. Unmarked is derived, so the three buckets always sum
// to the directory size.
func (s *Service) Today() (*Snapshot, error) {
	now := time.Now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	total, err := s.employees.Count()
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, apperrors.NewInternalError("failed to build dashboard snapshot", err)
	}

	present, err := s.records.CountByDateAndStatus(today, attendance.StatusPresent)
	if err != nil {
		s.logger.Error("failed to count present records", "error", err)
		return nil, apperrors.NewInternalError("failed to build dashboard snapshot", err)
	}

	absent, err := s.records.CountByDateAndStatus(today, attendance.StatusAbsent)
	if err != nil {
		s.logger.Error("failed to count absent records", "error", err)
		return nil, apperrors.NewInternalError("failed to build dashboard snapshot", err)
	}

	return &Snapshot{
		TotalEmployees: total,
		PresentToday:   present,
		AbsentToday:    absent,
		UnmarkedToday:  total - present - absent,
	}, nil
}
