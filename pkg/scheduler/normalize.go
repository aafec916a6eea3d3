package scheduler

import (
	"sort"

	"github.com/mlutter/dienstplan-api/pkg/models"
)

// clampWeekday folds any integer into the 0..6 weekday range
func clampWeekday(value int) int {
	return ((value % 7) + 7) % 7
}

// NormalizeWeekdays folds raw weekday values into 0..6, drops duplicates
// and returns them in ascending order. The same canonical form is used by
// the scheduler and by the persistence layer.
func NormalizeWeekdays(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	normalized := make([]int, 0, len(values))
	for _, v := range values {
		weekday := clampWeekday(v)
		if _, ok := seen[weekday]; ok {
			continue
		}
		seen[weekday] = struct{}{}
		normalized = append(normalized, weekday)
	}
	sort.Ints(normalized)
	return normalized
}

// NormalizeFixedSlots clamps each slot weekday, drops slots whose shift id
// is not a known cashier template and de-duplicates by (weekday, shiftId).
func NormalizeFixedSlots(slots []models.FixedCashierSlot) []models.FixedCashierSlot {
	seen := make(map[models.FixedCashierSlot]struct{}, len(slots))
	normalized := make([]models.FixedCashierSlot, 0, len(slots))
	for _, raw := range slots {
		if !IsCashierShiftID(raw.ShiftID) {
			continue
		}
		slot := models.FixedCashierSlot{Weekday: clampWeekday(raw.Weekday), ShiftID: raw.ShiftID}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		normalized = append(normalized, slot)
	}
	return normalized
}
