package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Statuses lists every accepted status value.
var Statuses = []string{StatusPresent, StatusAbsent}

type Attendance struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       time.Time `json:"-"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Attendance) ToResponse() Response {
	return Response{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(DateLayout),
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

func ToDataModel(a *Attendance) *attendanceDatamodel.Attendance {
	return &attendanceDatamodel.Attendance{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Attendance {
	return &Attendance{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

func FromDataModelSlice(records []*attendanceDatamodel.Attendance) []*Attendance {
	result := make([]*Attendance, len(records))
	for i, r := range records {
		result[i] = FromDataModel(r)
	}
	return result
}
