package handlers

import (
	"fmt"
	"unicode/utf8"

	"github.com/mlutter/dienstplan-api/pkg/models"
	"github.com/mlutter/dienstplan-api/pkg/scheduler"
)

// EmployeePayload is the request body for creating or updating an employee
type EmployeePayload struct {
	Name                string                    `json:"name"`
	MonthlyHours        int                       `json:"monthlyHours"`
	Area                models.Area               `json:"area"`
	EmploymentType      models.EmploymentType     `json:"employmentType"`
	AvailableWeekdays   []int                     `json:"availableWeekdays"`
	WeekendAvailability bool                      `json:"weekendAvailability"`
	FixedCashierSlots   []models.FixedCashierSlot `json:"fixedCashierSlots"`
}

// Validate checks the payload and returns a German validation message on
// failure, mirroring the messages the frontend displays.
func (p EmployeePayload) Validate() (string, bool) {
	if utf8.RuneCountInString(p.Name) < 2 {
		return "Name muss mindestens 2 Zeichen haben.", false
	}
	if p.MonthlyHours < 1 || p.MonthlyHours > 400 {
		return "Monatsstunden müssen zwischen 1 und 400 liegen.", false
	}
	if !p.Area.Valid() {
		return fmt.Sprintf("Unbekannter Bereich: %s", p.Area), false
	}
	if !p.EmploymentType.Valid() {
		return fmt.Sprintf("Unbekannte Beschäftigungsart: %s", p.EmploymentType), false
	}
	if len(p.AvailableWeekdays) == 0 {
		return "Mindestens ein Wochentag ist erforderlich.", false
	}
	for _, weekday := range p.AvailableWeekdays {
		if weekday < 0 || weekday > 6 {
			return "Wochentage müssen zwischen 0 und 6 liegen.", false
		}
	}
	for _, slot := range p.FixedCashierSlots {
		if slot.Weekday < 0 || slot.Weekday > 6 {
			return "Wochentage müssen zwischen 0 und 6 liegen.", false
		}
		if !scheduler.IsCashierShiftID(slot.ShiftID) {
			return fmt.Sprintf("Unbekannte Kassenschicht: %s", slot.ShiftID), false
		}
	}
	return "", true
}

func (p EmployeePayload) toModel() models.Employee {
	return models.Employee{
		Name:                p.Name,
		MonthlyHours:        p.MonthlyHours,
		Area:                p.Area,
		EmploymentType:      p.EmploymentType,
		AvailableWeekdays:   p.AvailableWeekdays,
		WeekendAvailability: p.WeekendAvailability,
		FixedCashierSlots:   p.FixedCashierSlots,
	}
}
