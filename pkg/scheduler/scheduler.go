package scheduler

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mlutter/dienstplan-api/pkg/models"
)

var weekdayNames = [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}

var weekdayShortNames = [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."}

var monthNames = [12]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Options controls one generation run
type Options struct {
	// Month selects the target month as "YYYY-MM". Empty or unparseable
	// values fall back to the current month.
	Month string

	// Now overrides the clock, used by tests. Zero means time.Now().
	Now time.Time
}

// mutableEmployee carries the per-run running state of one roster entry.
// Day markers are 1-based day numbers, 0 means never assigned.
type mutableEmployee struct {
	models.Employee
	remainingHours        int
	lastCashierDay        int
	lastAreaDay           int
	assignedCashierShifts int
	assignedAreaShifts    int
}

// run owns the mutable state of a single generation call
type run struct {
	employees []*mutableEmployee
	collator  *collate.Collator
}

func (r *run) nameLess(a, b *mutableEmployee) bool {
	return r.collator.CompareString(a.Name, b.Name) < 0
}

// slotContext describes one slot occurrence during candidate filtering
type slotContext struct {
	day              int
	weekday          int
	hours            int
	shiftID          string
	assignedToday    map[uint]struct{}
	weekendOrHoliday bool
}

// available applies the shared hour / double-booking / availability filter
func (c slotContext) available(e *mutableEmployee) bool {
	if e.remainingHours < c.hours {
		return false
	}
	if _, booked := c.assignedToday[e.ID]; booked {
		return false
	}
	if c.weekendOrHoliday {
		return e.WeekendAvailability
	}
	for _, weekday := range e.AvailableWeekdays {
		if weekday == c.weekday {
			return true
		}
	}
	return false
}

// cashierGap is the number of days since the last cashier assignment,
// treating "never assigned" as an infinite gap.
func cashierGap(day, lastCashierDay int) int {
	if lastCashierDay == 0 {
		return math.MaxInt
	}
	return day - lastCashierDay
}

// selectFixedCashier picks a permanent cashier employee holding a fixed
// slot for this weekday and shift. Ties go to the most remaining hours,
// then to name order.
func (r *run) selectFixedCashier(ctx slotContext) *mutableEmployee {
	var candidates []*mutableEmployee
	for _, e := range r.employees {
		if e.Area != models.AreaKasse || e.EmploymentType != models.EmploymentAngestellter {
			continue
		}
		if !ctx.available(e) {
			continue
		}
		for _, slot := range e.FixedCashierSlots {
			if slot.Weekday == ctx.weekday && slot.ShiftID == ctx.shiftID {
				candidates = append(candidates, e)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.remainingHours != b.remainingHours {
			return a.remainingHours > b.remainingHours
		}
		return r.nameLess(a, b)
	})
	return candidates[0]
}

// selectCashier picks a cashier employee for a slot without a fixed
// assignment. Aushilfen that worked the cashier desk the previous day are
// kept out of the preferred pool, but only as long as someone else is
// left; the rest-day spacing is a preference, not a hard rule.
func (r *run) selectCashier(ctx slotContext) *mutableEmployee {
	var candidates []*mutableEmployee
	for _, e := range r.employees {
		if e.Area != models.AreaKasse {
			continue
		}
		if ctx.available(e) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var preferred []*mutableEmployee
	for _, e := range candidates {
		if e.EmploymentType == models.EmploymentAushilfe && e.lastCashierDay != 0 && ctx.day-e.lastCashierDay <= 1 {
			continue
		}
		preferred = append(preferred, e)
	}

	pool := preferred
	if len(pool) == 0 {
		pool = candidates
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.EmploymentType == models.EmploymentAushilfe || b.EmploymentType == models.EmploymentAushilfe {
			gapA := cashierGap(ctx.day, a.lastCashierDay)
			gapB := cashierGap(ctx.day, b.lastCashierDay)
			if gapA != gapB {
				return gapA > gapB
			}
		}
		if a.remainingHours != b.remainingHours {
			return a.remainingHours > b.remainingHours
		}
		if a.assignedCashierShifts != b.assignedCashierShifts {
			return a.assignedCashierShifts < b.assignedCashierShifts
		}
		return r.nameLess(a, b)
	})
	return pool[0]
}

// selectArea picks an employee of a secondary area. Most remaining hours
// first, then the longest-resting employee (never assigned wins), then
// name order.
func (r *run) selectArea(area models.Area, ctx slotContext) *mutableEmployee {
	var candidates []*mutableEmployee
	for _, e := range r.employees {
		if e.Area != area {
			continue
		}
		if ctx.available(e) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.remainingHours != b.remainingHours {
			return a.remainingHours > b.remainingHours
		}
		if a.lastAreaDay != b.lastAreaDay {
			return a.lastAreaDay < b.lastAreaDay
		}
		return r.nameLess(a, b)
	})
	return candidates[0]
}

func (r *run) hasAreaEmployees(area models.Area) bool {
	for _, e := range r.employees {
		if e.Area == area {
			return true
		}
	}
	return false
}

// Generate produces the duty roster for one month from a roster snapshot.
// It never fails: degenerate input degrades to warnings and OPEN slots.
func Generate(employees []models.Employee, opts Options) models.GeneratedSchedule {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	year, month := resolveTargetMonth(opts.Month, now)
	monthKey := fmt.Sprintf("%04d-%02d", year, int(month))
	monthLabel := fmt.Sprintf("%s %d", monthNames[month-1], year)
	holidays := HolidaysForYear(year)

	r := &run{collator: collate.New(language.German)}
	for _, employee := range employees {
		employee.AvailableWeekdays = NormalizeWeekdays(employee.AvailableWeekdays)
		employee.FixedCashierSlots = NormalizeFixedSlots(employee.FixedCashierSlots)
		r.employees = append(r.employees, &mutableEmployee{
			Employee:       employee,
			remainingHours: employee.MonthlyHours,
		})
	}

	var summary models.ScheduleSummary
	warnings := []string{}
	days := []models.ScheduleDay{}
	totalDays := daysInMonth(year, month)

	for day := 1; day <= totalDays; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		iso := date.Format("2006-01-02")
		weekdayIndex := int(date.Weekday())
		weekend := weekdayIndex == 0 || weekdayIndex == 6
		holiday := IsHoliday(date, holidays)
		weekendOrHoliday := weekend || holiday

		dayType := models.DayWorkday
		if holiday {
			dayType = models.DayHoliday
		} else if weekend {
			dayType = models.DayWeekend
		}

		assignedToday := make(map[uint]struct{})
		scheduleDay := models.ScheduleDay{
			DateISO:      iso,
			ReadableDate: fmt.Sprintf("%s, %02d.%02d.", weekdayShortNames[weekdayIndex], day, int(month)),
			WeekdayIndex: weekdayIndex,
			WeekdayName:  weekdayNames[weekdayIndex],
			Type:         dayType,
			Shifts:       []models.ShiftAssignment{},
		}

		cashierTemplates := CashierWeekdayShifts
		if weekendOrHoliday {
			cashierTemplates = CashierWeekendShifts
		}

		for _, template := range cashierTemplates {
			summary.TotalCashierShifts++
			ctx := slotContext{
				day:              day,
				weekday:          weekdayIndex,
				hours:            template.Hours,
				shiftID:          template.ID,
				assignedToday:    assignedToday,
				weekendOrHoliday: weekendOrHoliday,
			}

			selected := r.selectFixedCashier(ctx)
			fixed := selected != nil
			if selected == nil {
				selected = r.selectCashier(ctx)
			}

			assignment := models.ShiftAssignment{
				ID:    fmt.Sprintf("%s-cashier-%s", iso, template.ID),
				Kind:  models.KindCashier,
				Area:  models.AreaKasse,
				Label: "Kasse " + template.Label,
				Start: clock(template.Start),
				End:   clock(template.End),
				Hours: template.Hours,
			}

			if selected != nil {
				assignment.Status = models.StatusAssigned
				assignment.Employee = &models.AssignedEmployee{
					ID:             selected.ID,
					Name:           selected.Name,
					EmploymentType: selected.EmploymentType,
				}
				if fixed {
					assignment.Note = "Feste Zuordnung"
				}
				summary.FilledCashierShifts++
				assignedToday[selected.ID] = struct{}{}
				selected.remainingHours -= template.Hours
				selected.lastCashierDay = day
				selected.assignedCashierShifts++
			} else {
				note := fmt.Sprintf("Keine verfügbare Person für Kasse (%s-%s) am %s", template.Start, template.End, iso)
				warnings = append(warnings, note)
				assignment.Status = models.StatusOpen
				assignment.Note = note
			}
			scheduleDay.Shifts = append(scheduleDay.Shifts, assignment)
		}

		for _, area := range models.NonCashierAreas {
			template := AreaShiftTemplate(area, weekendOrHoliday)

			if template.Closed {
				scheduleDay.Shifts = append(scheduleDay.Shifts, models.ShiftAssignment{
					ID:     fmt.Sprintf("%s-%s-closed", iso, area),
					Kind:   models.KindArea,
					Area:   area,
					Label:  template.Label,
					Start:  template.Start,
					End:    template.End,
					Hours:  template.Hours,
					Status: models.StatusClosed,
					Note:   template.Note,
				})
				continue
			}

			if !r.hasAreaEmployees(area) {
				summary.TotalAreaSlots++
				note := fmt.Sprintf("Kein Personal für %s angelegt.", AreaLabels[area])
				warnings = append(warnings, note)
				scheduleDay.Shifts = append(scheduleDay.Shifts, models.ShiftAssignment{
					ID:     fmt.Sprintf("%s-%s-missing", iso, area),
					Kind:   models.KindArea,
					Area:   area,
					Label:  template.Label,
					Start:  template.Start,
					End:    template.End,
					Hours:  template.Hours,
					Status: models.StatusOpen,
					Note:   note,
				})
				continue
			}

			summary.TotalAreaSlots++
			ctx := slotContext{
				day:              day,
				weekday:          weekdayIndex,
				hours:            template.Hours,
				assignedToday:    assignedToday,
				weekendOrHoliday: weekendOrHoliday,
			}
			selected := r.selectArea(area, ctx)

			assignment := models.ShiftAssignment{
				ID:    fmt.Sprintf("%s-%s", iso, area),
				Kind:  models.KindArea,
				Area:  area,
				Label: template.Label,
				Start: template.Start,
				End:   template.End,
				Hours: template.Hours,
			}

			if selected != nil {
				assignment.Status = models.StatusAssigned
				assignment.Employee = &models.AssignedEmployee{
					ID:             selected.ID,
					Name:           selected.Name,
					EmploymentType: selected.EmploymentType,
				}
				summary.FilledAreaSlots++
				assignedToday[selected.ID] = struct{}{}
				selected.remainingHours -= template.Hours
				selected.lastAreaDay = day
				selected.assignedAreaShifts++
			} else {
				var reason string
				if weekendOrHoliday {
					reason = fmt.Sprintf("Keine freigegebenen Ressourcen für %s am %s (Wochenende/Feiertag).", AreaLabels[area], iso)
				} else {
					reason = fmt.Sprintf("Kein verfügbares Personal für %s am %s.", AreaLabels[area], iso)
				}
				warnings = append(warnings, reason)
				assignment.Status = models.StatusOpen
				assignment.Note = reason
			}
			scheduleDay.Shifts = append(scheduleDay.Shifts, assignment)
		}

		days = append(days, scheduleDay)
	}

	if len(r.employees) == 0 {
		warnings = append(warnings, "Es sind keine Mitarbeitenden angelegt - Dienstplan enthält nur Platzhalter.")
	}

	generatedAt := time.Now()
	if !opts.Now.IsZero() {
		generatedAt = opts.Now
	}

	return models.GeneratedSchedule{
		MonthKey:    monthKey,
		MonthLabel:  monthLabel,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Days:        days,
		Summary:     summary,
		Warnings:    warnings,
	}
}

// resolveTargetMonth parses "YYYY-MM", falling back to the month of the
// reference time on any malformed input.
func resolveTargetMonth(month string, fallback time.Time) (int, time.Month) {
	if month == "" {
		return fallback.Year(), fallback.Month()
	}
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return fallback.Year(), fallback.Month()
	}
	year, yearErr := strconv.Atoi(parts[0])
	m, monthErr := strconv.Atoi(parts[1])
	if yearErr != nil || monthErr != nil || m < 1 || m > 12 {
		return fallback.Year(), fallback.Month()
	}
	return year, time.Month(m)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
