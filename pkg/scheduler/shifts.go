package scheduler

import "github.com/mlutter/dienstplan-api/pkg/models"

// ShiftTemplate is one cashier shift definition from the static catalog
type ShiftTemplate struct {
	ID    string
	Label string
	Start string
	End   string
	Hours int
}

// CashierWeekdayShifts are the three cashier slots on regular workdays
var CashierWeekdayShifts = []ShiftTemplate{
	{ID: "W-1", Label: "Frühdienst", Start: "06:00", End: "13:00", Hours: 7},
	{ID: "W-2", Label: "Mittelschicht", Start: "13:00", End: "18:00", Hours: 5},
	{ID: "W-3", Label: "Spätdienst", Start: "18:00", End: "22:00", Hours: 4},
}

// CashierWeekendShifts are the three cashier slots on weekend and holiday
// days. The morning shift starts later and is one hour shorter.
var CashierWeekendShifts = []ShiftTemplate{
	{ID: "WE-1", Label: "Frühdienst", Start: "07:00", End: "13:00", Hours: 6},
	{ID: "WE-2", Label: "Mittelschicht", Start: "13:00", End: "18:00", Hours: 5},
	{ID: "WE-3", Label: "Spätdienst", Start: "18:00", End: "22:00", Hours: 4},
}

// IsCashierShiftID reports whether the id names a known cashier template
func IsCashierShiftID(id string) bool {
	_, ok := CashierShiftByID(id)
	return ok
}

// CashierShiftByID resolves a cashier template by id, weekday set first
func CashierShiftByID(id string) (ShiftTemplate, bool) {
	for _, t := range CashierWeekdayShifts {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range CashierWeekendShifts {
		if t.ID == id {
			return t, true
		}
	}
	return ShiftTemplate{}, false
}

// AreaLabels maps each secondary area to its display label
var AreaLabels = map[models.Area]string{
	models.AreaBistro:    "Bistro-Einsatz",
	models.AreaLager:     "Lager-Einsatz",
	models.AreaWerkstatt: "Werkstatt-Einsatz",
}

// AreaTemplate is the slot definition for a secondary area on one day type
type AreaTemplate struct {
	Label  string
	Start  *string
	End    *string
	Hours  int
	Closed bool
	Note   string
}

func clock(v string) *string { return &v }

// AreaShiftTemplate returns the slot definition for a secondary area,
// picking the weekday or weekend/holiday variant. Werkstatt is closed on
// weekend and holiday days.
func AreaShiftTemplate(area models.Area, weekendOrHoliday bool) AreaTemplate {
	label := AreaLabels[area]

	switch area {
	case models.AreaBistro:
		if weekendOrHoliday {
			return AreaTemplate{Label: label, Start: clock("06:00"), End: clock("08:00"), Hours: 2}
		}
		return AreaTemplate{Label: label, Start: clock("05:00"), End: clock("07:00"), Hours: 2}
	case models.AreaLager:
		return AreaTemplate{Label: label, Start: clock("15:00"), End: clock("17:00"), Hours: 2}
	case models.AreaWerkstatt:
		if weekendOrHoliday {
			return AreaTemplate{
				Label:  label,
				Hours:  0,
				Closed: true,
				Note:   "Werkstatt ist am Wochenende/Feiertag geschlossen.",
			}
		}
		return AreaTemplate{Label: label, Start: clock("15:00"), End: clock("18:00"), Hours: 3}
	}

	// Unknown area, generic open slot without fixed times
	hours := 8
	if weekendOrHoliday {
		hours = 6
	}
	return AreaTemplate{Label: label, Hours: hours}
}
