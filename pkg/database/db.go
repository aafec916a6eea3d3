package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Employee represents the employees table. Weekday and fixed-slot lists
// are stored as JSON-encoded strings in the same canonical form the
// scheduler uses at runtime.
type Employee struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	MonthlyHours        int       `gorm:"not null" json:"monthly_hours"`
	Area                string    `gorm:"not null" json:"area"`
	EmploymentType      string    `gorm:"not null" json:"employment_type"`
	AvailableWeekdays   string    `gorm:"not null;default:'[]'" json:"available_weekdays"`
	WeekendAvailability bool      `gorm:"default:false" json:"weekend_availability"`
	FixedCashierSlots   string    `gorm:"not null;default:'[]'" json:"fixed_cashier_slots"`
	CreatedAt           time.Time `json:"created_at"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScheduleRun represents the schedule_runs table, one row per generated
// month per calendar day, upserted on every generation request.
type ScheduleRun struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MonthKey     string `gorm:"uniqueIndex:idx_month_date;not null" json:"month_key"`
	Date         string `gorm:"uniqueIndex:idx_month_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalSlots   int    `gorm:"default:0" json:"total_slots"`
	FilledSlots  int    `gorm:"default:0" json:"filled_slots"`
	WarningCount int    `gorm:"default:0" json:"warning_count"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "dienstplan.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&Employee{}, &MasterUser{}, &ScheduleRun{})

	return db
}
