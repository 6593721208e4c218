package employee

import "time"

type Employee struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;uniqueIndex;not null;size:20"`
	FullName   string    `gorm:"column:full_name;not null;size:100"`
	Email      string    `gorm:"column:email;uniqueIndex;not null;size:100"`
	Department string    `gorm:"column:department;not null;size:50"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
