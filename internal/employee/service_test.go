package employee_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	apperrors "github.com/frahmantamala/attendance-management/internal"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// MockRepository implements employee.RepositoryAPI for testing
type MockRepository struct {
	employees  map[string]*employeeDatamodel.Employee
	nextID     int64
	shouldFail bool
	failError  error
	createErr  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		employees: make(map[string]*employeeDatamodel.Employee),
		nextID:    1,
	}
}

func (m *MockRepository) Create(emp *employeeDatamodel.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.shouldFail {
		return m.failError
	}
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *MockRepository) GetAll() ([]*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*employeeDatamodel.Employee
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	return result, nil
}

func (m *MockRepository) GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	emp, exists := m.employees[employeeID]
	if !exists {
		return nil, nil
	}
	return emp, nil
}

func (m *MockRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, emp := range m.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Delete(employeeID string) error {
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.employees[employeeID]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(m.employees, employeeID)
	return nil
}

func (m *MockRepository) Count() (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return int64(len(m.employees)), nil
}

// MockPublisher records every published event
type MockPublisher struct {
	published []events.Event
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Employee Service", func() {
	var (
		repo      *MockRepository
		publisher *MockPublisher
		service   *employee.Service
	)

	newDTO := func() *employee.CreateEmployeeDTO {
		return &employee.CreateEmployeeDTO{
			EmployeeID: "EMP001",
			FullName:   "Arjun Sharma",
			Email:      "arjun.sharma@mail.com",
			Department: "Engineering",
		}
	}

	BeforeEach(func() {
		repo = NewMockRepository()
		publisher = &MockPublisher{}
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(repo, publisher, testLogger, true)
	})

	Describe("Create", func() {
		It("should create an employee and publish a created event", func() {
			result, err := service.Create(newDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.EmployeeID).To(Equal("EMP001"))
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeEmployeeCreated))
		})

		It("should trim whitespace and lowercase the email before storing", func() {
			dto := newDTO()
			dto.EmployeeID = "  EMP001  "
			dto.Email = "  Arjun.Sharma@Mail.COM "

			result, err := service.Create(dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.EmployeeID).To(Equal("EMP001"))
			Expect(result.Email).To(Equal("arjun.sharma@mail.com"))
		})

		It("should keep email casing when normalization is disabled", func() {
			testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
			service = employee.NewService(repo, publisher, testLogger, false)

			dto := newDTO()
			dto.Email = "Arjun.Sharma@Mail.com"

			result, err := service.Create(dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Email).To(Equal("Arjun.Sharma@Mail.com"))
		})

		It("should reject a missing full name", func() {
			dto := newDTO()
			dto.FullName = "   "

			_, err := service.Create(dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject a malformed email", func() {
			dto := newDTO()
			dto.Email = "not-an-email"

			_, err := service.Create(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject an employee id with invalid characters", func() {
			dto := newDTO()
			dto.EmployeeID = "EMP 001!"

			_, err := service.Create(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject a duplicate employee id", func() {
			_, err := service.Create(newDTO())
			Expect(err).NotTo(HaveOccurred())

			dto := newDTO()
			dto.Email = "other@mail.com"
			_, err = service.Create(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeConflict))
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateEmployee))
			Expect(appErr.Message).To(ContainSubstring("employee_id"))
		})

		It("should reject a duplicate email under a different employee id", func() {
			_, err := service.Create(newDTO())
			Expect(err).NotTo(HaveOccurred())

			dto := newDTO()
			dto.EmployeeID = "EMP002"
			_, err = service.Create(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateEmployee))
			Expect(appErr.Message).To(ContainSubstring("email"))
		})

		It("should map a lost insert race to a conflict", func() {
			repo.createErr = gorm.ErrDuplicatedKey

			_, err := service.Create(newDTO())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeConflict))
		})

		It("should wrap repository failures as internal errors", func() {
			repo.shouldFail = true
			repo.failError = errors.New("connection refused")

			_, err := service.Create(newDTO())

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
		})
	})

	Describe("Get", func() {
		It("should return the employee by business identifier", func() {
			_, err := service.Create(newDTO())
			Expect(err).NotTo(HaveOccurred())

			result, err := service.Get("EMP001")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.FullName).To(Equal("Arjun Sharma"))
		})

		It("should return not found for an unknown identifier", func() {
			_, err := service.Get("EMP999")

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeNotFound))
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeEmployeeNotFound))
		})
	})

	Describe("List", func() {
		It("should return every employee", func() {
			for _, id := range []string{"EMP001", "EMP002", "EMP003"} {
				dto := newDTO()
				dto.EmployeeID = id
				dto.Email = id + "@mail.com"
				_, err := service.Create(dto)
				Expect(err).NotTo(HaveOccurred())
			}

			result, err := service.List()

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(3))
		})

		It("should return an empty slice when the directory is empty", func() {
			result, err := service.List()

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("should return the deleted snapshot and publish a deleted event", func() {
			_, err := service.Create(newDTO())
			Expect(err).NotTo(HaveOccurred())

			snapshot, err := service.Delete("EMP001")

			Expect(err).NotTo(HaveOccurred())
			Expect(snapshot.EmployeeID).To(Equal("EMP001"))
			Expect(snapshot.FullName).To(Equal("Arjun Sharma"))

			_, err = service.Get("EMP001")
			Expect(err).To(HaveOccurred())

			Expect(publisher.published).To(HaveLen(2))
			Expect(publisher.published[1].EventType()).To(Equal(events.EventTypeEmployeeDeleted))
		})

		It("should return not found for an unknown identifier", func() {
			_, err := service.Delete("EMP999")

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeNotFound))
		})
	})
})
