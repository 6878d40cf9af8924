package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00:00"},
		{in: "14:30", want: "14:30:00"},
		{in: "14:30:00", want: "14:30:00"},
		{in: " 09:05 ", want: "09:05:00"},
		{in: "9:05", wantErr: true},
		{in: "09:5", wantErr: true},
		{in: "09:05:0", wantErr: true},
		{in: "23:59", want: "23:59:00"},
		{in: "14:30:15", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "1430", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Canonical())
		})
	}
}

func TestTimeOfDayPastMidnight(t *testing.T) {
	end := MustTimeOfDay("23:30").Add(60)
	assert.Equal(t, "24:30", end.String())
	assert.False(t, end.Valid())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", d.String())
	assert.Equal(t, time.Monday, d.Weekday())

	for _, bad := range []string{"09/03/2026", "2026-3-9", "2026-02-30", "2026-03-09T23:30:00-03:00", "+2026-03-9", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateArithmetic(t *testing.T) {
	d, _ := ParseDate("2026-02-28")
	assert.Equal(t, "2026-03-01", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))

	loc := time.FixedZone("ART", -3*3600)
	at := d.At(MustTimeOfDay("10:15"), loc)
	assert.Equal(t, time.Date(2026, 2, 28, 13, 15, 0, 0, time.UTC), at.UTC())
}
