package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlutter/dienstplan-api/pkg/models"
)

// RecordRun upserts the generation counters for a month on the current
// day: the request count accumulates, the fill counters reflect the
// latest run.
func RecordRun(db *gorm.DB, schedule models.GeneratedSchedule) error {
	today := time.Now().Format("2006-01-02")
	totalSlots := schedule.Summary.TotalCashierShifts + schedule.Summary.TotalAreaSlots
	filledSlots := schedule.Summary.FilledCashierShifts + schedule.Summary.FilledAreaSlots

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "month_key"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_slots":   totalSlots,
			"filled_slots":  filledSlots,
			"warning_count": len(schedule.Warnings),
		}),
	}).Create(&ScheduleRun{
		MonthKey:     schedule.MonthKey,
		Date:         today,
		RequestCount: 1,
		TotalSlots:   totalSlots,
		FilledSlots:  filledSlots,
		WarningCount: len(schedule.Warnings),
	}).Error
}

// RecentRuns returns the latest generation history entries
func RecentRuns(db *gorm.DB, limit int) ([]ScheduleRun, error) {
	var runs []ScheduleRun
	err := db.Order("date desc, month_key desc").Limit(limit).Find(&runs).Error
	return runs, err
}
