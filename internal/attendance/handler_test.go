package attendance_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-management/internal/attendance/postgres"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	employeePostgres "github.com/frahmantamala/attendance-management/internal/employee/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Attendance Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux

		yesterdayText string
	)

	writeBody := func(employeeID, date, status string) string {
		return fmt.Sprintf(`{"employee_id":%q,"date":%q,"status":%q}`, employeeID, date, status)
	}

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

		for i, id := range []string{"EMP001", "EMP002", "EMP003"} {
			emp := &employeeDatamodel.Employee{
				EmployeeID: id,
				FullName:   "Employee " + id,
				Email:      fmt.Sprintf("emp%d@mail.com", i+1),
				Department: "Engineering",
			}
			Expect(db.Create(emp).Error).NotTo(HaveOccurred())
		}

		employeeRepo := employeePostgres.NewEmployeeRepository(db)
		attendanceRepo := attendancePostgres.NewAttendanceRepository(db)
		service := attendance.NewService(attendanceRepo, employeeRepo, nil, slogger, 1)
		handler := attendance.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/api/attendance", handler.MarkAttendance)
		router.Put("/api/attendance", handler.UpsertAttendance)
		router.Post("/api/attendance/bulk", handler.BulkUpsertAttendance)
		router.Get("/api/attendance/date/{date}", handler.GetAttendanceByDate)
		router.Get("/api/attendance/calendar/{year}/{month}", handler.GetMonthSummary)
		router.Get("/api/attendance/{employee_id}", handler.GetAttendanceByEmployee)
		router.Get("/api/attendance/{employee_id}/summary", handler.GetAttendanceSummary)

		now := time.Now().UTC()
		yesterdayText = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -1).Format(attendance.DateLayout)
	})

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("POST /api/attendance", func() {
		It("should mark attendance and return 201", func() {
			w := do(http.MethodPost, "/api/attendance", writeBody("EMP001", yesterdayText, "Present"))

			Expect(w.Code).To(Equal(http.StatusCreated))

			var record attendance.Response
			Expect(json.NewDecoder(w.Body).Decode(&record)).To(Succeed())
			Expect(record.ID).To(BeNumerically(">", 0))
			Expect(record.Date).To(Equal(yesterdayText))
			Expect(record.Status).To(Equal("Present"))
		})

		It("should return 409 when the day is already marked", func() {
			Expect(do(http.MethodPost, "/api/attendance", writeBody("EMP001", yesterdayText, "Present")).Code).
				To(Equal(http.StatusCreated))

			w := do(http.MethodPost, "/api/attendance", writeBody("EMP001", yesterdayText, "Absent"))
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should return 404 for an unknown employee", func() {
			w := do(http.MethodPost, "/api/attendance", writeBody("EMP999", yesterdayText, "Present"))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a bad status", func() {
			w := do(http.MethodPost, "/api/attendance", writeBody("EMP001", yesterdayText, "Late"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /api/attendance", func() {
		It("should flip the status without a conflict", func() {
			Expect(do(http.MethodPut, "/api/attendance", writeBody("EMP001", yesterdayText, "Present")).Code).
				To(Equal(http.StatusOK))

			w := do(http.MethodPut, "/api/attendance", writeBody("EMP001", yesterdayText, "Absent"))
			Expect(w.Code).To(Equal(http.StatusOK))

			var record attendance.Response
			Expect(json.NewDecoder(w.Body).Decode(&record)).To(Succeed())
			Expect(record.Status).To(Equal("Absent"))
		})
	})

	Describe("POST /api/attendance/bulk", func() {
		It("should report success and failure counts", func() {
			body := fmt.Sprintf(`{"records":[%s,%s,%s]}`,
				writeBody("EMP001", yesterdayText, "Present"),
				writeBody("EMP999", yesterdayText, "Present"),
				writeBody("EMP002", yesterdayText, "Absent"))

			w := do(http.MethodPost, "/api/attendance/bulk", body)
			Expect(w.Code).To(Equal(http.StatusOK))

			var response attendance.BulkResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Success).To(Equal(2))
			Expect(response.Failed).To(Equal(1))
			Expect(response.Records).To(HaveLen(2))
		})
	})

	Describe("GET /api/attendance/date/{date}", func() {
		It("should return the full roster with counts", func() {
			Expect(do(http.MethodPost, "/api/attendance", writeBody("EMP001", yesterdayText, "Present")).Code).
				To(Equal(http.StatusCreated))
			Expect(do(http.MethodPost, "/api/attendance", writeBody("EMP002", yesterdayText, "Absent")).Code).
				To(Equal(http.StatusCreated))

			w := do(http.MethodGet, "/api/attendance/date/"+yesterdayText, "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var roster attendance.RosterResponse
			Expect(json.NewDecoder(w.Body).Decode(&roster)).To(Succeed())
			Expect(roster.Records).To(HaveLen(3))
			Expect(roster.Present).To(Equal(1))
			Expect(roster.Absent).To(Equal(1))
			Expect(roster.Unmarked).To(Equal(1))
			Expect(roster.Records[2].Status).To(BeNil())
		})

		It("should return 400 for a malformed date", func() {
			w := do(http.MethodGet, "/api/attendance/date/not-a-date", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/attendance/calendar/{year}/{month}", func() {
		It("should return sparse per-day counts", func() {
			Expect(db.Create(&attendanceDatamodel.Attendance{
				EmployeeID: "EMP001",
				Date:       time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
				Status:     "Present",
			}).Error).NotTo(HaveOccurred())

			w := do(http.MethodGet, "/api/attendance/calendar/2024/2", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var summary attendance.MonthSummaryResponse
			Expect(json.NewDecoder(w.Body).Decode(&summary)).To(Succeed())
			Expect(summary.Days).To(HaveLen(1))
			Expect(summary.Days[0].Date).To(Equal("2024-02-29"))
		})

		It("should return 400 for month 13", func() {
			w := do(http.MethodGet, "/api/attendance/calendar/2024/13", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/attendance/{employee_id}", func() {
		It("should filter history with date bounds", func() {
			base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			for offset := 0; offset < 5; offset++ {
				Expect(db.Create(&attendanceDatamodel.Attendance{
					EmployeeID: "EMP001",
					Date:       base.AddDate(0, 0, offset),
					Status:     "Present",
				}).Error).NotTo(HaveOccurred())
			}

			w := do(http.MethodGet, "/api/attendance/EMP001?date_from=2026-08-02&date_to=2026-08-04", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var response attendance.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Total).To(Equal(3))
			Expect(response.Records[0].Date).To(Equal("2026-08-04"))
		})

		It("should return 400 for a malformed date filter", func() {
			w := do(http.MethodGet, "/api/attendance/EMP001?date_from=bad", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 for an unknown employee", func() {
			w := do(http.MethodGet, "/api/attendance/EMP999", "")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /api/attendance/{employee_id}/summary", func() {
		It("should count both statuses", func() {
			base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			for offset, status := range []string{"Present", "Present", "Absent"} {
				Expect(db.Create(&attendanceDatamodel.Attendance{
					EmployeeID: "EMP001",
					Date:       base.AddDate(0, 0, offset),
					Status:     status,
				}).Error).NotTo(HaveOccurred())
			}

			w := do(http.MethodGet, "/api/attendance/EMP001/summary", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var summary attendance.SummaryResponse
			Expect(json.NewDecoder(w.Body).Decode(&summary)).To(Succeed())
			Expect(summary.TotalDays).To(Equal(3))
			Expect(summary.PresentDays).To(Equal(2))
			Expect(summary.AbsentDays).To(Equal(1))
		})
	})
})
