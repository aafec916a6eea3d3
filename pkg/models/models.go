package models

import "time"

// Area is the work area an employee belongs to
type Area string

const (
	AreaKasse     Area = "KASSE"
	AreaBistro    Area = "BISTRO"
	AreaLager     Area = "LAGER"
	AreaWerkstatt Area = "WERKSTATT"
)

// Areas lists every valid area in definition order
var Areas = []Area{AreaKasse, AreaBistro, AreaLager, AreaWerkstatt}

// NonCashierAreas lists the secondary work areas in slot order
var NonCashierAreas = []Area{AreaBistro, AreaLager, AreaWerkstatt}

// Valid reports whether the value is one of the known areas
func (a Area) Valid() bool {
	for _, area := range Areas {
		if a == area {
			return true
		}
	}
	return false
}

// EmploymentType is the employment category of an employee
type EmploymentType string

const (
	EmploymentAngestellter EmploymentType = "ANGESTELLTER"
	EmploymentAushilfe     EmploymentType = "AUSHILFE"
)

// EmploymentTypes lists every valid employment category
var EmploymentTypes = []EmploymentType{EmploymentAngestellter, EmploymentAushilfe}

// Valid reports whether the value is one of the known employment categories
func (e EmploymentType) Valid() bool {
	return e == EmploymentAngestellter || e == EmploymentAushilfe
}

// FixedCashierSlot is a recurring (weekday, cashier shift) commitment.
// Only meaningful for permanent cashier-desk employees.
type FixedCashierSlot struct {
	Weekday int    `json:"weekday"` // 0 = Sunday ... 6 = Saturday
	ShiftID string `json:"shiftId"`
}

// Employee is one roster entry as consumed by the scheduler
type Employee struct {
	ID                  uint               `json:"id"`
	Name                string             `json:"name"`
	MonthlyHours        int                `json:"monthlyHours"`
	Area                Area               `json:"area"`
	EmploymentType      EmploymentType     `json:"employmentType"`
	AvailableWeekdays   []int              `json:"availableWeekdays"`
	WeekendAvailability bool               `json:"weekendAvailability"`
	FixedCashierSlots   []FixedCashierSlot `json:"fixedCashierSlots"`
	CreatedAt           time.Time          `json:"createdAt"`
}

// ShiftKind distinguishes cashier desk slots from secondary area slots
type ShiftKind string

const (
	KindCashier ShiftKind = "CASHIER"
	KindArea    ShiftKind = "AREA"
)

// ShiftStatus is the fill state of one slot occurrence
type ShiftStatus string

const (
	StatusAssigned ShiftStatus = "ASSIGNED"
	StatusOpen     ShiftStatus = "OPEN"
	StatusClosed   ShiftStatus = "CLOSED"
)

// DayType classifies a calendar day. Holiday wins over weekend.
type DayType string

const (
	DayWorkday DayType = "WORKDAY"
	DayWeekend DayType = "WEEKEND"
	DayHoliday DayType = "HOLIDAY"
)

// AssignedEmployee is the employee reference embedded in a filled slot
type AssignedEmployee struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	EmploymentType EmploymentType `json:"employmentType"`
}

// ShiftAssignment is one slot occurrence on one day
type ShiftAssignment struct {
	ID       string            `json:"id"`
	Kind     ShiftKind         `json:"kind"`
	Area     Area              `json:"area"`
	Label    string            `json:"label"`
	Start    *string           `json:"start"`
	End      *string           `json:"end"`
	Hours    int               `json:"hours"`
	Employee *AssignedEmployee `json:"employee,omitempty"`
	Status   ShiftStatus       `json:"status"`
	Note     string            `json:"note,omitempty"`
}

// ScheduleDay is one calendar day with its ordered slot records
type ScheduleDay struct {
	DateISO      string            `json:"dateISO"`
	ReadableDate string            `json:"readableDate"`
	WeekdayIndex int               `json:"weekdayIndex"`
	WeekdayName  string            `json:"weekdayName"`
	Type         DayType           `json:"type"`
	Shifts       []ShiftAssignment `json:"shifts"`
}

// ScheduleSummary holds the fill-rate counters, cashier and area separately
type ScheduleSummary struct {
	TotalCashierShifts  int `json:"totalCashierShifts"`
	FilledCashierShifts int `json:"filledCashierShifts"`
	TotalAreaSlots      int `json:"totalAreaSlots"`
	FilledAreaSlots     int `json:"filledAreaSlots"`
}

// GeneratedSchedule is the full result of one generation run
type GeneratedSchedule struct {
	MonthKey    string          `json:"monthKey"`
	MonthLabel  string          `json:"monthLabel"`
	GeneratedAt string          `json:"generatedAt"`
	Days        []ScheduleDay   `json:"days"`
	Summary     ScheduleSummary `json:"summary"`
	Warnings    []string        `json:"warnings"`
}
