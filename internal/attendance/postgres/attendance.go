package postgres

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(record *attendanceDatamodel.Attendance) error {
	return r.db.Create(record).Error
}

// UpdateStatus overwrites only the status column; created_at stays the
// original insert time.
func (r *AttendanceRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&attendanceDatamodel.Attendance{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *AttendanceRepository) GetByID(id int64) (*attendanceDatamodel.Attendance, error) {
	var record attendanceDatamodel.Attendance
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) FindByEmployeeAndDate(employeeID string, date time.Time) (*attendanceDatamodel.Attendance, error) {
	var record attendanceDatamodel.Attendance
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) ListByEmployee(employeeID string, dateFrom, dateTo *time.Time) ([]*attendanceDatamodel.Attendance, error) {
	query := r.db.Where("employee_id = ?", employeeID)
	if dateFrom != nil {
		query = query.Where("date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("date <= ?", *dateTo)
	}

	var records []*attendanceDatamodel.Attendance
	err := query.Order("date DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) ListByDate(date time.Time) ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance
	err := r.db.Where("date = ?", date).
		Order("employee_id ASC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) ListByDateRange(from, to time.Time) ([]*attendanceDatamodel.Attendance, error) {
	var records []*attendanceDatamodel.Attendance
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) CountByDateAndStatus(date time.Time, status string) (int64, error) {
	var count int64
	err := r.db.Model(&attendanceDatamodel.Attendance{}).
		Where("date = ? AND status = ?", date, status).
		Count(&count).Error
	return count, err
}
