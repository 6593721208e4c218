package employee

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/attendance-management/internal"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"gorm.io/gorm"
)

// RepositoryAPI defines the data access methods for the employee directory.
// Lookup methods return (nil, nil) when no row matches.
type RepositoryAPI interface {
	Create(employee *employeeDatamodel.Employee) error
	GetAll() ([]*employeeDatamodel.Employee, error)
	GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
	GetByEmail(email string) (*employeeDatamodel.Employee, error)
	Delete(employeeID string) error
	Count() (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo           RepositoryAPI
	eventBus       EventPublisher
	logger         *slog.Logger
	normalizeEmail bool
}

func NewService(repo RepositoryAPI, eventBus EventPublisher, logger *slog.Logger, normalizeEmail bool) *Service {
	return &Service{
		repo:           repo,
		eventBus:       eventBus,
		logger:         logger,
		normalizeEmail: normalizeEmail,
	}
}

// Create validates and persists a new directory entry. Duplicate checks run
// as two independent lookups, identity field first; the store's unique
// constraints remain the real guarantee under concurrent creates.
func (s *Service) Create(dto *CreateEmployeeDTO) (*Employee, error) {
	dto.Normalize(s.normalizeEmail)
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	existing, err := s.repo.GetByEmployeeID(dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to check employee_id uniqueness", "error", err, "employee_id", dto.EmployeeID)
		return nil, apperrors.NewInternalError("failed to create employee", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateEmployeeError("employee_id", dto.EmployeeID)
	}

	existing, err = s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err, "email", dto.Email)
		return nil, apperrors.NewInternalError("failed to create employee", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateEmployeeError("email", dto.Email)
	}

	record := &employeeDatamodel.Employee{
		EmployeeID: dto.EmployeeID,
		FullName:   dto.FullName,
		Email:      dto.Email,
		Department: dto.Department,
	}

	if err := s.repo.Create(record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent create; the constraint is
			// the source of truth, the pre-checks above are an early exit
			return nil, apperrors.DuplicateEmployeeError("employee_id", dto.EmployeeID)
		}
		s.logger.Error("failed to create employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, apperrors.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created",
		"employee_id", record.EmployeeID,
		"department", record.Department)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(),
			events.NewEmployeeCreatedEvent(record.EmployeeID, record.Email, record.Department))
	}

	return FromDataModel(record), nil
}

// List returns every employee, most recently created first.
func (s *Service) List() ([]*Employee, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, apperrors.NewInternalError("failed to list employees", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) Get(employeeID string) (*Employee, error) {
	record, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", employeeID)
		return nil, apperrors.NewInternalError("failed to get employee", err)
	}
	if record == nil {
		return nil, apperrors.EmployeeNotFoundError(employeeID)
	}
	return FromDataModel(record), nil
}

// Delete removes the employee and, through the repository's transactional
// cascade, every attendance record owned by it. Returns the deleted snapshot.
func (s *Service) Delete(employeeID string) (*Employee, error) {
	record, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		s.logger.Error("failed to load employee for delete", "error", err, "employee_id", employeeID)
		return nil, apperrors.NewInternalError("failed to delete employee", err)
	}
	if record == nil {
		return nil, apperrors.EmployeeNotFoundError(employeeID)
	}

	if err := s.repo.Delete(employeeID); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", employeeID)
		return nil, apperrors.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", employeeID)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(), events.NewEmployeeDeletedEvent(employeeID))
	}

	return FromDataModel(record), nil
}
