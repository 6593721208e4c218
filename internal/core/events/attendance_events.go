package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated    = "employee.created"
	EventTypeEmployeeDeleted    = "employee.deleted"
	EventTypeAttendanceMarked   = "attendance.marked"
	EventTypeAttendanceUpserted = "attendance.upserted"
)

type EmployeeCreatedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func NewEmployeeCreatedEvent(employeeID, email, department string) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"email":       email,
				"department":  department,
			},
		},
		EmployeeID: employeeID,
		Email:      email,
		Department: department,
	}
}

type EmployeeDeletedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
}

func NewEmployeeDeletedEvent(employeeID string) *EmployeeDeletedEvent {
	return &EmployeeDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
			},
		},
		EmployeeID: employeeID,
	}
}

type AttendanceWrittenEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func NewAttendanceMarkedEvent(employeeID, date, status string) *AttendanceWrittenEvent {
	return newAttendanceWrittenEvent(EventTypeAttendanceMarked, employeeID, date, status)
}

func NewAttendanceUpsertedEvent(employeeID, date, status string) *AttendanceWrittenEvent {
	return newAttendanceWrittenEvent(EventTypeAttendanceUpserted, employeeID, date, status)
}

func newAttendanceWrittenEvent(eventType, employeeID, date, status string) *AttendanceWrittenEvent {
	return &AttendanceWrittenEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"date":        date,
				"status":      status,
			},
		},
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	}
}
