package employee_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/employee"
	employeePostgres "github.com/frahmantamala/attendance-management/internal/employee/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Employee Handler Integration", func() {
	var (
		db      *gorm.DB
		router  *chi.Mux
		service *employee.Service
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{}, &attendanceDatamodel.Attendance{})
		Expect(err).NotTo(HaveOccurred())

		repo := employeePostgres.NewEmployeeRepository(db)
		service = employee.NewService(repo, nil, slogger, true)
		handler := employee.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/api/employees", handler.CreateEmployee)
		router.Get("/api/employees", handler.ListEmployees)
		router.Get("/api/employees/{employee_id}", handler.GetEmployee)
		router.Delete("/api/employees/{employee_id}", handler.DeleteEmployee)
	})

	It("should create an employee and return 201 with the stored entity", func() {
		body := `{"employee_id":"EMP001","full_name":"Arjun Sharma","email":"Arjun@Mail.com","department":"Engineering"}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var created employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Email).To(Equal("arjun@mail.com"))
	})

	It("should return 400 for a body that fails validation", func() {
		body := `{"employee_id":"EMP 001","full_name":"","email":"bad","department":""}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 409 for a duplicate employee id", func() {
		body := `{"employee_id":"EMP001","full_name":"Arjun Sharma","email":"arjun@mail.com","department":"Engineering"}`
		req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
		router.ServeHTTP(httptest.NewRecorder(), req)

		dup := `{"employee_id":"EMP001","full_name":"Someone Else","email":"else@mail.com","department":"Finance"}`
		req = httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(dup))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should list employees with a total", func() {
		for _, id := range []string{"EMP001", "EMP002"} {
			_, err := service.Create(&employee.CreateEmployeeDTO{
				EmployeeID: id,
				FullName:   "Employee " + id,
				Email:      id + "@mail.com",
				Department: "Engineering",
			})
			Expect(err).NotTo(HaveOccurred())
		}

		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response employee.ListResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Total).To(Equal(2))
		Expect(response.Employees).To(HaveLen(2))
	})

	It("should fetch a single employee by its path parameter", func() {
		_, err := service.Create(&employee.CreateEmployeeDTO{
			EmployeeID: "EMP001",
			FullName:   "Arjun Sharma",
			Email:      "arjun@mail.com",
			Department: "Engineering",
		})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/employees/EMP001", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var fetched employee.Employee
		Expect(json.NewDecoder(w.Body).Decode(&fetched)).To(Succeed())
		Expect(fetched.FullName).To(Equal("Arjun Sharma"))
	})

	It("should return 404 for an unknown employee", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/employees/EMP999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should delete an employee and return the snapshot", func() {
		_, err := service.Create(&employee.CreateEmployeeDTO{
			EmployeeID: "EMP001",
			FullName:   "Arjun Sharma",
			Email:      "arjun@mail.com",
			Department: "Engineering",
		})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodDelete, "/api/employees/EMP001", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response employee.DeleteResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Message).To(ContainSubstring("EMP001"))
		Expect(response.Employee.EmployeeID).To(Equal("EMP001"))

		req = httptest.NewRequest(http.MethodGet, "/api/employees/EMP001", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
