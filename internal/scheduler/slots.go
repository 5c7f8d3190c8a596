package scheduler

import (
	"sort"
	"time"
)

// Slot is a candidate (date, time, venue-agnostic) triple the placement
// loop considers before a venue is chosen for it.
type Slot struct {
	Start time.Time
}

// EnumerateSlots walks every date in [seasonStart, seasonEnd] whose weekday
// is in preferredDays, producing one slot per preferredTimes entry, in the
// given location.
func EnumerateSlots(seasonStart, seasonEnd time.Time, preferredDays []time.Weekday, preferredTimes []string, loc *time.Location) []Slot {
	if loc == nil {
		loc = time.UTC
	}
	dayAllowed := make(map[time.Weekday]bool, len(preferredDays))
	for _, d := range preferredDays {
		dayAllowed[d] = true
	}

	var slots []Slot
	for d := seasonStart; !d.After(seasonEnd); d = d.AddDate(0, 0, 1) {
		if len(dayAllowed) > 0 && !dayAllowed[d.Weekday()] {
			continue
		}
		for _, hm := range preferredTimes {
			start, err := parseLocalTime(d, hm, loc)
			if err != nil {
				continue
			}
			slots = append(slots, Slot{Start: start})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}

func parseLocalTime(date time.Time, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date.Format("2006-01-02")+" "+hm, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
