package schedule

import (
	"fmt"
	"time"

	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

// TimeRange is the stored form of a working interval, "HH:mm" on both ends.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Interval is a parsed, half-open working interval [Start, End).
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (r TimeRange) Interval() (Interval, error) {
	start, err := ParseTimeOfDay(r.Start)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseTimeOfDay(r.End)
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, fmt.Errorf("range %s-%s: start must be before end", r.Start, r.End)
	}
	return Interval{Start: start, End: end}, nil
}

func (iv Interval) Range() TimeRange {
	return TimeRange{Start: iv.Start.String(), End: iv.End.String()}
}

type DaySchedule struct {
	IsWorking bool        `json:"is_working"`
	Slots     []TimeRange `json:"slots"`
}

// WeeklySchedule is indexed by time.Weekday, 0 = Sunday.
type WeeklySchedule [7]DaySchedule

func (w WeeklySchedule) Day(wd time.Weekday) DaySchedule {
	return w[int(wd)%7]
}

// ===============================
// Validation
// ===============================

// ValidateRanges parses ranges and rejects malformed, reversed or
// overlapping entries. The result is sorted by start. field prefixes the
// reported field names.
func ValidateRanges(field string, ranges []TimeRange) ([]Interval, []httperr.FieldError) {
	var fields []httperr.FieldError
	out := make([]Interval, 0, len(ranges))

	for i, r := range ranges {
		iv, err := r.Interval()
		if err != nil {
			fields = append(fields, httperr.FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "usar HH:mm con inicio anterior al fin",
			})
			continue
		}
		out = append(out, iv)
	}
	if len(fields) > 0 {
		return nil, fields
	}

	sortByStart(out)
	for i := 1; i < len(out); i++ {
		if out[i].Start < out[i-1].End {
			fields = append(fields, httperr.FieldError{
				Field:   field,
				Message: "los rangos horarios se superponen",
			})
			return nil, fields
		}
	}
	return out, nil
}

func (w WeeklySchedule) Validate() error {
	var fields []httperr.FieldError

	for day, ds := range w {
		name := fmt.Sprintf("days[%d].slots", day)
		if ds.IsWorking && len(ds.Slots) == 0 {
			fields = append(fields, httperr.FieldError{
				Field:   name,
				Message: "un día laborable necesita al menos un rango",
			})
			continue
		}
		if _, fe := ValidateRanges(name, ds.Slots); len(fe) > 0 {
			fields = append(fields, fe...)
		}
	}

	if len(fields) > 0 {
		return httperr.ErrValidation("invalid_schedule", fields...)
	}
	return nil
}
