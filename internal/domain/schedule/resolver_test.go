package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var fallback = Interval{Start: MustTimeOfDay("09:00"), End: MustTimeOfDay("18:00")}

func iv(start, end string) Interval {
	return Interval{Start: MustTimeOfDay(start), End: MustTimeOfDay(end)}
}

func mondayWeek() *WeeklySchedule {
	var w WeeklySchedule
	w[time.Monday] = DaySchedule{IsWorking: true, Slots: []TimeRange{{"09:00", "12:00"}, {"15:00", "19:00"}}}
	w[time.Tuesday] = DaySchedule{IsWorking: false, Slots: []TimeRange{{"09:00", "12:00"}}}
	return &w
}

func TestResolve(t *testing.T) {
	monday, _ := ParseDate("2026-03-09")
	tuesday := monday.AddDays(1)
	wednesday := monday.AddDays(2)

	tests := []struct {
		name      string
		date      Date
		week      *WeeklySchedule
		overrides []Override
		want      Resolution
	}{
		{
			name: "weekly split shift",
			date: monday,
			week: mondayWeek(),
			want: Resolution{IsWorkingDay: true, Intervals: []Interval{iv("09:00", "12:00"), iv("15:00", "19:00")}, Source: SourceWeekly},
		},
		{
			name: "weekly day off",
			date: tuesday,
			week: mondayWeek(),
			want: Resolution{Source: SourceClosed},
		},
		{
			name: "no weekly entry",
			date: wednesday,
			week: mondayWeek(),
			want: Resolution{Source: SourceClosed},
		},
		{
			name: "no weekly schedule at all",
			date: monday,
			want: Resolution{Source: SourceClosed},
		},
		{
			name:      "override closes a working day",
			date:      monday,
			week:      mondayWeek(),
			overrides: []Override{{ID: 4, IsWorkingDay: false}},
			want:      Resolution{Source: SourceOverride, OverrideID: 4},
		},
		{
			name:      "override replaces intervals",
			date:      monday,
			week:      mondayWeek(),
			overrides: []Override{{ID: 2, IsWorkingDay: true, Slots: []TimeRange{{"10:00", "11:00"}}}},
			want:      Resolution{IsWorkingDay: true, Intervals: []Interval{iv("10:00", "11:00")}, Source: SourceOverride, OverrideID: 2},
		},
		{
			name:      "override opens a closed day",
			date:      tuesday,
			week:      mondayWeek(),
			overrides: []Override{{ID: 9, IsWorkingDay: true, Slots: []TimeRange{{"16:00", "20:00"}}}},
			want:      Resolution{IsWorkingDay: true, Intervals: []Interval{iv("16:00", "20:00")}, Source: SourceOverride, OverrideID: 9},
		},
		{
			name:      "legacy working override without slots uses fallback",
			date:      wednesday,
			overrides: []Override{{ID: 3, IsWorkingDay: true}},
			want:      Resolution{IsWorkingDay: true, Intervals: []Interval{fallback}, Source: SourceOverride, OverrideID: 3},
		},
		{
			name: "highest id wins regardless of order",
			date: monday,
			week: mondayWeek(),
			overrides: []Override{
				{ID: 7, IsWorkingDay: true, Slots: []TimeRange{{"08:00", "10:00"}}},
				{ID: 12, IsWorkingDay: false},
				{ID: 10, IsWorkingDay: true, Slots: []TimeRange{{"11:00", "12:00"}}},
			},
			want: Resolution{Source: SourceOverride, OverrideID: 12},
		},
		{
			name:      "unparseable stored ranges are skipped",
			date:      monday,
			overrides: []Override{{ID: 1, IsWorkingDay: true, Slots: []TimeRange{{"xx", "yy"}, {"13:00", "14:00"}}}},
			want:      Resolution{IsWorkingDay: true, Intervals: []Interval{iv("13:00", "14:00")}, Source: SourceOverride, OverrideID: 1},
		},
		{
			name:      "stored override ranges come back sorted",
			date:      monday,
			overrides: []Override{{ID: 5, IsWorkingDay: true, Slots: []TimeRange{{"14:00", "15:00"}, {"09:00", "10:00"}}}},
			want:      Resolution{IsWorkingDay: true, Intervals: []Interval{iv("09:00", "10:00"), iv("14:00", "15:00")}, Source: SourceOverride, OverrideID: 5},
		},
		{
			name: "stored weekly ranges come back sorted",
			date: monday,
			week: func() *WeeklySchedule {
				var w WeeklySchedule
				w[time.Monday] = DaySchedule{IsWorking: true, Slots: []TimeRange{{"15:00", "19:00"}, {"09:00", "12:00"}}}
				return &w
			}(),
			want: Resolution{IsWorkingDay: true, Intervals: []Interval{iv("09:00", "12:00"), iv("15:00", "19:00")}, Source: SourceWeekly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.date, tt.week, tt.overrides, fallback)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPickOverrideEmpty(t *testing.T) {
	_, ok := PickOverride(nil)
	assert.False(t, ok)
}
