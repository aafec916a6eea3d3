package database

import (
	"encoding/json"

	"github.com/mlutter/dienstplan-api/pkg/models"
	"github.com/mlutter/dienstplan-api/pkg/scheduler"
)

// SerializeWeekdays encodes a weekday list into its stored JSON form,
// normalizing it first so stored data matches runtime semantics.
func SerializeWeekdays(values []int) string {
	data, _ := json.Marshal(scheduler.NormalizeWeekdays(values))
	return string(data)
}

// ParseStoredWeekdays decodes a stored weekday list. Malformed JSON
// yields an empty list, decoded values are re-normalized defensively.
func ParseStoredWeekdays(value string) []int {
	var parsed []int
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return []int{}
	}
	return scheduler.NormalizeWeekdays(parsed)
}

// SerializeFixedSlots encodes fixed cashier slots into their stored JSON
// form after normalization.
func SerializeFixedSlots(slots []models.FixedCashierSlot) string {
	data, _ := json.Marshal(scheduler.NormalizeFixedSlots(slots))
	return string(data)
}

// ParseStoredFixedSlots decodes stored fixed cashier slots. Malformed
// JSON yields an empty list.
func ParseStoredFixedSlots(value string) []models.FixedCashierSlot {
	var parsed []models.FixedCashierSlot
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return []models.FixedCashierSlot{}
	}
	return scheduler.NormalizeFixedSlots(parsed)
}

// NewEmployeeRecord builds a storable record from a roster entry. Fixed
// cashier slots are only persisted for permanent cashier-desk staff.
func NewEmployeeRecord(employee models.Employee) Employee {
	fixedSlots := []models.FixedCashierSlot{}
	if employee.Area == models.AreaKasse && employee.EmploymentType == models.EmploymentAngestellter {
		fixedSlots = employee.FixedCashierSlots
	}

	return Employee{
		Name:                employee.Name,
		MonthlyHours:        employee.MonthlyHours,
		Area:                string(employee.Area),
		EmploymentType:      string(employee.EmploymentType),
		AvailableWeekdays:   SerializeWeekdays(employee.AvailableWeekdays),
		WeekendAvailability: employee.WeekendAvailability,
		FixedCashierSlots:   SerializeFixedSlots(fixedSlots),
	}
}

// ToModel maps a stored record back into a roster entry. Unknown stored
// enum values fall back to defaults instead of failing, and fixed slots
// are dropped unless the employee is permanent cashier-desk staff.
func (e Employee) ToModel() models.Employee {
	area := models.Area(e.Area)
	if !area.Valid() {
		area = models.AreaKasse
	}
	employmentType := models.EmploymentType(e.EmploymentType)
	if !employmentType.Valid() {
		employmentType = models.EmploymentAngestellter
	}

	fixedSlots := []models.FixedCashierSlot{}
	if area == models.AreaKasse && employmentType == models.EmploymentAngestellter {
		fixedSlots = ParseStoredFixedSlots(e.FixedCashierSlots)
	}

	return models.Employee{
		ID:                  e.ID,
		Name:                e.Name,
		MonthlyHours:        e.MonthlyHours,
		Area:                area,
		EmploymentType:      employmentType,
		AvailableWeekdays:   ParseStoredWeekdays(e.AvailableWeekdays),
		WeekendAvailability: e.WeekendAvailability,
		FixedCashierSlots:   fixedSlots,
		CreatedAt:           e.CreatedAt,
	}
}
