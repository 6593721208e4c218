package attendance

import "time"

// Attendance is one status mark for one employee on one calendar date.
// The composite unique index is the real guard for the one-record-per-day
// invariant; application pre-checks only exist for friendlier errors.
type Attendance struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;not null;size:20;uniqueIndex:uq_employee_date"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_employee_date"`
	Status     string    `gorm:"column:status;not null;size:10"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attendance) TableName() string {
	return "attendance"
}
