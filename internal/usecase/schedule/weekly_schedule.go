package schedule

import (
	"context"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/schedule"
)

type UpdateWeeklySchedule struct {
	store Store
	audit audit.Auditor
}

func NewUpdateWeeklySchedule(
	store Store,
	audit audit.Auditor,
) *UpdateWeeklySchedule {
	return &UpdateWeeklySchedule{
		store: store,
		audit: audit,
	}
}

// Execute replaces the barber's default week. Ranges are stored normalized
// to "HH:mm".
func (uc *UpdateWeeklySchedule) Execute(
	ctx context.Context,
	barberID uint,
	week domain.WeeklySchedule,
	actor string,
) (domain.WeeklySchedule, error) {

	if err := week.Validate(); err != nil {
		return week, err
	}

	var normalized domain.WeeklySchedule
	for day, ds := range week {
		ivs, _ := domain.ValidateRanges("slots", ds.Slots)
		ranges := make([]domain.TimeRange, 0, len(ivs))
		for _, iv := range ivs {
			ranges = append(ranges, iv.Range())
		}
		normalized[day] = domain.DaySchedule{IsWorking: ds.IsWorking && len(ranges) > 0, Slots: ranges}
	}

	if _, err := activeBarber(ctx, uc.store, barberID); err != nil {
		return week, err
	}

	if err := uc.store.UpdateWeeklySchedule(ctx, barberID, normalized); err != nil {
		return week, storeErr(err, "barber_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "weekly_schedule_updated",
		Entity:   "barber",
		EntityID: &barberID,
	})

	return normalized, nil
}
