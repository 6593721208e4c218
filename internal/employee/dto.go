package employee

import (
	"strings"

	errors "github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Normalize trims every field and optionally folds the email to lower case.
// Runs before validation and duplicate checks so the stored values are the
// checked values.
func (dto *CreateEmployeeDTO) Normalize(lowercaseEmail bool) {
	dto.EmployeeID = strings.TrimSpace(dto.EmployeeID)
	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Department = strings.TrimSpace(dto.Department)
	if lowercaseEmail {
		dto.Email = strings.ToLower(dto.Email)
	}
}

func (dto *CreateEmployeeDTO) Validate() *errors.AppError {
	return validation.ValidateEmployeeProfile(dto.EmployeeID, dto.FullName, dto.Email, dto.Department)
}

type ListResponse struct {
	Employees []*Employee `json:"employees"`
	Total     int         `json:"total"`
}

type DeleteResponse struct {
	Message  string    `json:"message"`
	Employee *Employee `json:"employee"`
}
