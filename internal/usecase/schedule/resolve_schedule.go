package schedule

import (
	"context"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/schedule"
)

// ResolveSchedule answers which intervals a barber works on a date.
type ResolveSchedule struct {
	store    Reader
	fallback domain.Interval
}

func NewResolveSchedule(
	store Reader,
	fallback domain.Interval,
) *ResolveSchedule {
	return &ResolveSchedule{
		store:    store,
		fallback: fallback,
	}
}

// Execute fails only when the barber cannot be found or the store errors. A
// day without any schedule is a closed Resolution.
func (uc *ResolveSchedule) Execute(
	ctx context.Context,
	barberID uint,
	date domain.Date,
) (domain.Resolution, error) {

	barber, err := activeBarber(ctx, uc.store, barberID)
	if err != nil {
		return domain.Resolution{}, err
	}

	rows, err := uc.store.ListOverridesForDate(ctx, barberID, date.String())
	if err != nil {
		return domain.Resolution{}, storeErr(err, "barber_not_found")
	}

	overrides := make([]domain.Override, 0, len(rows))
	for _, r := range rows {
		overrides = append(overrides, r.Domain())
	}

	return domain.Resolve(date, barber.Week(), overrides, uc.fallback), nil
}
