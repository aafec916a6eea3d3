package scheduler

import "time"

// easterSunday computes Easter Sunday for a year using the anonymous
// Gregorian computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func fixedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// HolidaysForYear returns the set of NRW public holidays for a year,
// keyed by ISO date: five Easter-relative holidays plus six fixed dates.
func HolidaysForYear(year int) map[string]struct{} {
	easter := easterSunday(year)

	movable := []time.Time{
		easter.AddDate(0, 0, -2), // Karfreitag
		easter.AddDate(0, 0, 1),  // Ostermontag
		easter.AddDate(0, 0, 39), // Christi Himmelfahrt
		easter.AddDate(0, 0, 50), // Pfingstmontag
		easter.AddDate(0, 0, 60), // Fronleichnam
	}

	fixed := []time.Time{
		fixedDate(year, time.January, 1),   // Neujahr
		fixedDate(year, time.May, 1),       // Tag der Arbeit
		fixedDate(year, time.October, 3),   // Tag der Deutschen Einheit
		fixedDate(year, time.November, 1),  // Allerheiligen
		fixedDate(year, time.December, 25), // 1. Weihnachtstag
		fixedDate(year, time.December, 26), // 2. Weihnachtstag
	}

	set := make(map[string]struct{}, len(movable)+len(fixed))
	for _, d := range append(movable, fixed...) {
		set[d.Format("2006-01-02")] = struct{}{}
	}
	return set
}

// IsHoliday reports whether the date falls on a holiday in the given set
func IsHoliday(date time.Time, holidays map[string]struct{}) bool {
	_, ok := holidays[date.Format("2006-01-02")]
	return ok
}
