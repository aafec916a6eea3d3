package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlutter/dienstplan-api/pkg/models"
)

func TestSerializeWeekdaysNormalizes(t *testing.T) {
	assert.Equal(t, "[0,1,6]", SerializeWeekdays([]int{7, -1, 1, 1, 8}))
	assert.Equal(t, "[]", SerializeWeekdays(nil))
}

func TestParseStoredWeekdays(t *testing.T) {
	assert.Equal(t, []int{1, 3, 5}, ParseStoredWeekdays("[5,3,1]"))
	assert.Empty(t, ParseStoredWeekdays("not json"))
	assert.Empty(t, ParseStoredWeekdays(""))
	// stored out-of-range values are folded, not rejected
	assert.Equal(t, []int{0, 1}, ParseStoredWeekdays("[7,8]"))
}

func TestFixedSlotRoundTrip(t *testing.T) {
	slots := []models.FixedCashierSlot{
		{Weekday: 1, ShiftID: "W-2"},
		{Weekday: 1, ShiftID: "W-2"},
		{Weekday: 2, ShiftID: "invalid"},
	}
	stored := SerializeFixedSlots(slots)
	assert.Equal(t, []models.FixedCashierSlot{{Weekday: 1, ShiftID: "W-2"}}, ParseStoredFixedSlots(stored))
	assert.Empty(t, ParseStoredFixedSlots("{broken"))
}

func TestNewEmployeeRecordGatesFixedSlots(t *testing.T) {
	base := models.Employee{
		Name:              "Anna",
		MonthlyHours:      120,
		AvailableWeekdays: []int{1, 2},
		FixedCashierSlots: []models.FixedCashierSlot{{Weekday: 1, ShiftID: "W-1"}},
	}

	cashier := base
	cashier.Area = models.AreaKasse
	cashier.EmploymentType = models.EmploymentAngestellter
	assert.Equal(t, `[{"weekday":1,"shiftId":"W-1"}]`, NewEmployeeRecord(cashier).FixedCashierSlots)

	// Aushilfen and non-cashier staff never store fixed slots
	aushilfe := base
	aushilfe.Area = models.AreaKasse
	aushilfe.EmploymentType = models.EmploymentAushilfe
	assert.Equal(t, "[]", NewEmployeeRecord(aushilfe).FixedCashierSlots)

	bistro := base
	bistro.Area = models.AreaBistro
	bistro.EmploymentType = models.EmploymentAngestellter
	assert.Equal(t, "[]", NewEmployeeRecord(bistro).FixedCashierSlots)
}

func TestToModelFallsBackOnUnknownEnums(t *testing.T) {
	record := Employee{
		ID:                  7,
		Name:                "Berta",
		MonthlyHours:        80,
		Area:                "GARTEN",
		EmploymentType:      "PRAKTIKANT",
		AvailableWeekdays:   "[2,4]",
		WeekendAvailability: true,
		FixedCashierSlots:   `[{"weekday":2,"shiftId":"W-3"}]`,
	}

	employee := record.ToModel()
	assert.Equal(t, models.AreaKasse, employee.Area)
	assert.Equal(t, models.EmploymentAngestellter, employee.EmploymentType)
	assert.Equal(t, []int{2, 4}, employee.AvailableWeekdays)
	// defaults make the record permanent cashier staff, so slots survive
	assert.Equal(t, []models.FixedCashierSlot{{Weekday: 2, ShiftID: "W-3"}}, employee.FixedCashierSlots)
}

func TestToModelRoundTrip(t *testing.T) {
	employee := models.Employee{
		Name:                "Clara",
		MonthlyHours:        100,
		Area:                models.AreaKasse,
		EmploymentType:      models.EmploymentAngestellter,
		AvailableWeekdays:   []int{6, 0, 1},
		WeekendAvailability: true,
		FixedCashierSlots:   []models.FixedCashierSlot{{Weekday: 6, ShiftID: "WE-2"}},
	}

	mapped := NewEmployeeRecord(employee).ToModel()
	assert.Equal(t, employee.Name, mapped.Name)
	assert.Equal(t, employee.MonthlyHours, mapped.MonthlyHours)
	assert.Equal(t, []int{0, 1, 6}, mapped.AvailableWeekdays)
	assert.Equal(t, employee.FixedCashierSlots, mapped.FixedCashierSlots)
	assert.True(t, mapped.WeekendAvailability)
}
