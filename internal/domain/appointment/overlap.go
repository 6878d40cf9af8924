package appointment

import (
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// Span is a half-open occupied interval [Start, Start+Minutes).
type Span struct {
	Start   schedule.TimeOfDay
	Minutes int
}

func (s Span) End() schedule.TimeOfDay {
	return s.Start.Add(s.Minutes)
}

// Overlaps uses half-open semantics, so touching spans do not overlap.
func Overlaps(a, b Span) bool {
	return a.Start < b.End() && a.End() > b.Start
}

// Blocked reports whether slot overlaps any of the occupied spans.
func Blocked(slot Span, occupied []Span) bool {
	for _, o := range occupied {
		if Overlaps(slot, o) {
			return true
		}
	}
	return false
}

// OccupiedSpans converts live appointments into spans using the duration
// snapshotted at booking time. Rows that are not live or carry an unreadable
// time are ignored.
func OccupiedSpans(appts []models.Appointment) []Span {
	out := make([]Span, 0, len(appts))
	for _, a := range appts {
		if !Status(a.Status).IsLive() {
			continue
		}
		start, err := schedule.ParseTimeOfDay(a.Time)
		if err != nil {
			continue
		}
		out = append(out, Span{Start: start, Minutes: a.DurationMinutes})
	}
	return out
}
