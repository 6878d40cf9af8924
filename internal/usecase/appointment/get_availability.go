package appointment

import (
	"context"
	"time"

	"github.com/facuperezm/barberia-sub000/internal/clock"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/metrics"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      string
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type Availability struct {
	Date      string `json:"date"`
	BarberID  uint   `json:"barber_id"`
	ServiceID uint   `json:"service_id"`
	Slots     []Slot `json:"slots"`
}

type GetAvailability struct {
	repo     domain.Repository
	resolver ScheduleResolver
	clock    clock.Clock
	policy   Policy
	metrics  *metrics.Metrics
}

func NewGetAvailability(
	repo domain.Repository,
	resolver ScheduleResolver,
	clk clock.Clock,
	policy Policy,
	m *metrics.Metrics,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		resolver: resolver,
		clock:    clk,
		policy:   policy,
		metrics:  m,
	}
}

// Execute lists every candidate slot for the day and whether it can still be
// booked. It never writes. A closed day yields an empty slot list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*Availability, error) {

	started := time.Now()

	date, fields := parseQuery(in)
	if len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	// --------------------------------------------------
	// 1. Working intervals (also proves the barber exists)
	// --------------------------------------------------
	res, err := uc.resolver.Execute(ctx, in.BarberID, date)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Service duration
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, storeErr(err, "service_not_found")
	}
	if err := activeService(svc); err != nil {
		return nil, err
	}

	out := &Availability{
		Date:      date.String(),
		BarberID:  in.BarberID,
		ServiceID: in.ServiceID,
		Slots:     []Slot{},
	}
	if !res.IsWorkingDay {
		uc.metrics.ObserveAvailability(res.Source, started)
		return out, nil
	}

	// --------------------------------------------------
	// 3. Occupied time
	// --------------------------------------------------
	appts, err := uc.repo.ListLiveAppointments(ctx, in.BarberID, date.String())
	if err != nil {
		return nil, storeErr(err, "barber_not_found")
	}
	occupied := domain.OccupiedSpans(appts)

	// --------------------------------------------------
	// 4. Candidates
	// --------------------------------------------------
	earliest := uc.policy.earliest(uc.clock.Now())
	for _, t := range schedule.GenerateDaySlots(res.Intervals, svc.DurationMinutes) {
		slot := domain.Span{Start: t, Minutes: svc.DurationMinutes}
		available := !domain.Blocked(slot, occupied) &&
			!date.At(t, uc.policy.Location).Before(earliest)

		out.Slots = append(out.Slots, Slot{Time: t.String(), Available: available})
	}

	uc.metrics.ObserveAvailability(res.Source, started)
	return out, nil
}

func parseQuery(in AvailabilityInput) (schedule.Date, []httperr.FieldError) {
	var fields []httperr.FieldError

	if in.BarberID == 0 {
		fields = append(fields, httperr.FieldError{Field: "barber_id", Message: "es obligatorio"})
	}
	if in.ServiceID == 0 {
		fields = append(fields, httperr.FieldError{Field: "service_id", Message: "es obligatorio"})
	}

	var date schedule.Date
	if in.Date == "" {
		fields = append(fields, httperr.FieldError{Field: "date", Message: "es obligatorio"})
	} else if d, err := schedule.ParseDate(in.Date); err != nil {
		fields = append(fields, httperr.FieldError{Field: "date", Message: "usar YYYY-MM-DD"})
	} else {
		date = d
	}

	return date, fields
}
