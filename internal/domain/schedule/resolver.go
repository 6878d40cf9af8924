package schedule

import "sort"

// Override is the resolver's view of a stored per-date exception.
type Override struct {
	ID           uint
	IsWorkingDay bool
	Slots        []TimeRange
}

// Resolution is the authoritative working plan for one barber and date.
type Resolution struct {
	IsWorkingDay bool
	Intervals    []Interval
	// Source is "override", "weekly" or "closed".
	Source     string
	OverrideID uint
}

const (
	SourceOverride = "override"
	SourceWeekly   = "weekly"
	SourceClosed   = "closed"
)

// PickOverride returns the override with the highest id, or false when none.
func PickOverride(overrides []Override) (Override, bool) {
	if len(overrides) == 0 {
		return Override{}, false
	}
	best := overrides[0]
	for _, o := range overrides[1:] {
		if o.ID > best.ID {
			best = o
		}
	}
	return best, true
}

// Resolve decides the working intervals for date. An override replaces the
// weekly day entirely. A working override without slots (legacy rows) uses
// fallback. Unparseable stored ranges are skipped.
func Resolve(date Date, week *WeeklySchedule, overrides []Override, fallback Interval) Resolution {
	if o, ok := PickOverride(overrides); ok {
		if !o.IsWorkingDay {
			return Resolution{Source: SourceOverride, OverrideID: o.ID}
		}

		ivs := parseStored(o.Slots)
		if len(o.Slots) == 0 {
			ivs = []Interval{fallback}
		}
		return Resolution{
			IsWorkingDay: len(ivs) > 0,
			Intervals:    ivs,
			Source:       SourceOverride,
			OverrideID:   o.ID,
		}
	}

	if week == nil {
		return Resolution{Source: SourceClosed}
	}

	day := week.Day(date.Weekday())
	if !day.IsWorking {
		return Resolution{Source: SourceClosed}
	}

	ivs := parseStored(day.Slots)
	if len(ivs) == 0 {
		return Resolution{Source: SourceClosed}
	}
	return Resolution{IsWorkingDay: true, Intervals: ivs, Source: SourceWeekly}
}

func parseStored(ranges []TimeRange) []Interval {
	out := make([]Interval, 0, len(ranges))
	for _, r := range ranges {
		if iv, err := r.Interval(); err == nil {
			out = append(out, iv)
		}
	}
	sortByStart(out)
	return out
}

func sortByStart(ivs []Interval) {
	sort.SliceStable(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
}
