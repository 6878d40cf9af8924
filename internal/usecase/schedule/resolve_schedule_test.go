package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

var fallback = domain.Interval{Start: domain.MustTimeOfDay("09:00"), End: domain.MustTimeOfDay("18:00")}

func mondays() domain.WeeklySchedule {
	var w domain.WeeklySchedule
	w[time.Monday] = domain.DaySchedule{IsWorking: true, Slots: []domain.TimeRange{{Start: "09:00", End: "12:00"}}}
	return w
}

func TestResolveScheduleUsesWeeklyAndOverrides(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addBarber(1, mondays())
	uc := NewResolveSchedule(store, fallback)

	monday, _ := domain.ParseDate("2026-03-09")

	res, err := uc.Execute(ctx, 1, monday)
	require.NoError(t, err)
	assert.True(t, res.IsWorkingDay)
	assert.Equal(t, domain.SourceWeekly, res.Source)

	res, err = uc.Execute(ctx, 1, monday.AddDays(2))
	require.NoError(t, err)
	assert.False(t, res.IsWorkingDay)
	assert.Empty(t, res.Intervals)

	create := NewCreateOverride(store, &recordingAuditor{})
	_, err = create.Execute(ctx, CreateOverrideInput{BarberID: 1, Date: "2026-03-09", IsWorkingDay: false, Reason: "feriado"})
	require.NoError(t, err)

	res, err = uc.Execute(ctx, 1, monday)
	require.NoError(t, err)
	assert.False(t, res.IsWorkingDay)
	assert.Equal(t, domain.SourceOverride, res.Source)
}

func TestResolveScheduleErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	uc := NewResolveSchedule(store, fallback)
	monday, _ := domain.ParseDate("2026-03-09")

	_, err := uc.Execute(ctx, 42, monday)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	store.addBarber(2, mondays())
	store.barbers[2].Active = false
	_, err = uc.Execute(ctx, 2, monday)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	store.fail = errors.New("connection refused")
	_, err = uc.Execute(ctx, 2, monday)
	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindTransient, kind)
}
