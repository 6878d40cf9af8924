package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/facuperezm/barberia-sub000/internal/errs"
)

// ===============================
// Time of day
// ===============================

// TimeOfDay is a local wall-clock time in minutes since midnight. Values past
// 24:00 are allowed as the end of a slot that spills over an interval.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay accepts "HH:mm" or "HH:mm:ss" with two-digit fields.
// Seconds must be zero since slots have minute granularity.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)

	var layout string
	switch {
	case hasShape(s, "00:00"):
		layout = "15:04"
	case hasShape(s, "00:00:00"):
		layout = "15:04:05"
	default:
		return 0, errs.New(fmt.Sprintf("time of day %q is not HH:mm", s))
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, errs.Wrapf(err, "parse time of day %q", s)
	}
	if t.Second() != 0 {
		return 0, errs.New(fmt.Sprintf("time of day %q has non-zero seconds", s))
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// hasShape reports whether s matches shape, where '0' stands for any digit.
func hasShape(s, shape string) bool {
	if len(s) != len(shape) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if shape[i] == '0' {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		} else if s[i] != shape[i] {
			return false
		}
	}
	return true
}

func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// String renders "HH:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Canonical renders the stored "HH:mm:ss" form.
func (t TimeOfDay) Canonical() string {
	return t.String() + ":00"
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// ===============================
// Calendar date
// ===============================

const DateLayout = "2006-01-02"

// Date is a calendar day with no time or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts "YYYY-MM-DD" only.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	if !hasShape(s, "0000-00-00") {
		return Date{}, errs.New(fmt.Sprintf("date %q is not YYYY-MM-DD", s))
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.Wrapf(err, "parse date %q", s)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return d.midnight(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight(time.UTC).AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	return d.midnight(time.UTC).Before(o.midnight(time.UTC))
}

// At returns the instant of tod on d in loc.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return d.midnight(loc).Add(time.Duration(tod) * time.Minute)
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}
