package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM attendance").Error; err != nil {
				log.Fatalf("failed to clear attendance: %v", err)
			}
			if err := db.Exec("DELETE FROM employees").Error; err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Println("Cleared existing employees and attendance data")
		}

		employees := []struct {
			EmployeeID string
			FullName   string
			Email      string
			Department string
		}{
			{"EMP001", "Arjun Sharma", "arjun.sharma@mail.com", "Engineering"},
			{"EMP002", "Priya Patel", "priya.patel@mail.com", "Engineering"},
			{"EMP003", "Rahul Verma", "rahul.verma@mail.com", "Finance"},
			{"EMP004", "Sneha Iyer", "sneha.iyer@mail.com", "Human Resources"},
			{"EMP005", "Vikram Rao", "vikram.rao@mail.com", "Operations"},
		}

		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE employee_id = ?", e.EmployeeID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO employees (employee_id, full_name, email, department, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				e.EmployeeID, e.FullName, e.Email, e.Department,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.EmployeeID, err)
			}
			fmt.Println("Seeded employee:", e.EmployeeID)
		}

		// Last five weekdays of attendance. Every third slot stays Absent so
		// the dashboard and summaries have something to count on both sides.
		today := time.Now().UTC().Truncate(24 * time.Hour)
		seeded := 0
		for dayOffset := 1; dayOffset <= 7; dayOffset++ {
			date := today.AddDate(0, 0, -dayOffset)
			if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}

			for i, e := range employees {
				status := "Present"
				if (dayOffset+i)%3 == 0 {
					status = "Absent"
				}

				if err := db.Exec(
					"INSERT INTO attendance (employee_id, date, status, created_at) VALUES (?, ?, ?, now()) ON CONFLICT (employee_id, date) DO NOTHING",
					e.EmployeeID, date.Format("2006-01-02"), status,
				).Error; err != nil {
					log.Fatalf("failed to insert attendance for %s on %s: %v", e.EmployeeID, date.Format("2006-01-02"), err)
				}
				seeded++
			}
		}

		fmt.Printf("Seeded %d attendance records across the last week\n", seeded)
	},
}
