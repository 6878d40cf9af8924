package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/clock"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/metrics"
	"github.com/facuperezm/barberia-sub000/internal/models"
	"github.com/facuperezm/barberia-sub000/internal/notify"
	"github.com/facuperezm/barberia-sub000/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	BarberID  uint
	ServiceID uint

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date string
	Time string
}

type Booking struct {
	Appointment *models.Appointment
	// PaymentURL is empty when no gateway is configured or it failed.
	PaymentURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	clock    clock.Clock
	policy   Policy
	audit    audit.Auditor
	notifier Notifier
	payments PaymentGateway
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewCreateBooking wires the booking transaction. payments may be nil.
func NewCreateBooking(
	repo domain.Repository,
	clk clock.Clock,
	policy Policy,
	audit audit.Auditor,
	notifier Notifier,
	payments PaymentGateway,
	m *metrics.Metrics,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		clock:    clk,
		policy:   policy,
		audit:    audit,
		notifier: notifier,
		payments: payments,
		metrics:  m,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a slot. The conflict re-check and the insert run in one
// transaction holding the barber's row lock, so two overlapping requests
// cannot both succeed. Every failure is exactly one of the httperr kinds.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*Booking, error) {

	started := time.Now()

	// --------------------------------------------------
	// 1. Input shape and normalization
	// --------------------------------------------------
	contact := validators.Contact{
		Name:  in.CustomerName,
		Email: in.CustomerEmail,
		Phone: in.CustomerPhone,
	}.Normalize()

	fields := validators.ValidateContact(contact, uc.policy.CheckEmailDomain)
	if in.BarberID == 0 {
		fields = append(fields, httperr.FieldError{Field: "barber_id", Message: "es obligatorio"})
	}
	if in.ServiceID == 0 {
		fields = append(fields, httperr.FieldError{Field: "service_id", Message: "es obligatorio"})
	}

	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		fields = append(fields, httperr.FieldError{Field: "date", Message: "usar YYYY-MM-DD"})
	}
	start, err := schedule.ParseTimeOfDay(in.Time)
	if err != nil {
		fields = append(fields, httperr.FieldError{Field: "time", Message: "usar HH:mm"})
	}

	if len(fields) > 0 {
		uc.metrics.ObserveBooking(metrics.OutcomeInvalid, started)
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	// --------------------------------------------------
	// 2. Minimum advance
	// --------------------------------------------------
	if date.At(start, uc.policy.Location).Before(uc.policy.earliest(uc.clock.Now())) {
		uc.metrics.ObserveBooking(metrics.OutcomeInvalid, started)
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3. Transaction: lock barber, re-check, insert
	// --------------------------------------------------
	var (
		created *models.Appointment
		barber  *models.Barber
		service *models.Service
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.TxRepository) error {
		b, err := tx.LockBarber(ctx, in.BarberID)
		if err != nil {
			return storeErr(err, "barber_not_found")
		}
		if !b.Active {
			return httperr.ErrNotFound("barber_not_found")
		}

		if err := uc.checkWorkingHours(ctx, tx, b, date, start); err != nil {
			return err
		}

		svc, err := tx.GetService(ctx, in.ServiceID)
		if err != nil {
			return storeErr(err, "service_not_found")
		}
		if err := activeService(svc); err != nil {
			return err
		}

		live, err := tx.ListLiveAppointments(ctx, in.BarberID, date.String())
		if err != nil {
			return storeErr(err, "barber_not_found")
		}

		slot := domain.Span{Start: start, Minutes: svc.DurationMinutes}
		if domain.Blocked(slot, domain.OccupiedSpans(live)) {
			return httperr.ErrConflict("time_conflict")
		}

		ap := &models.Appointment{
			BarberID:        in.BarberID,
			ServiceID:       svc.ID,
			CustomerName:    contact.Name,
			CustomerEmail:   contact.Email,
			CustomerPhone:   contact.Phone,
			Date:            date.String(),
			Time:            start.Canonical(),
			DurationMinutes: svc.DurationMinutes,
			PriceCents:      svc.PriceCents,
			Status:          string(domain.InitialStatus()),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			if errs.Is(err, errs.ErrConflict) {
				return httperr.ErrConflict("time_conflict")
			}
			return storeErr(err, "barber_not_found")
		}

		created, barber, service = ap, b, svc
		return nil
	})
	if err != nil {
		err = storeErr(err, "barber_not_found")
		uc.metrics.ObserveBooking(outcomeFor(err), started)
		return nil, err
	}
	uc.metrics.ObserveBooking(metrics.OutcomeCreated, started)

	// --------------------------------------------------
	// 4. After commit
	// --------------------------------------------------
	out := &Booking{Appointment: created}
	out.PaymentURL = uc.startPayment(ctx, created, service)

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPublic,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"barber_id":  created.BarberID,
			"service_id": created.ServiceID,
			"date":       created.Date,
			"time":       created.Time,
		},
	})

	ev := event(notify.KindBookingCreated, created)
	ev.BarberName = barber.Name
	ev.ServiceName = service.Name
	ev.PaymentURL = out.PaymentURL
	uc.notifier.Notify(ev)

	return out, nil
}

// checkWorkingHours requires the start to fall inside one of the day's
// resolved intervals. As with availability, the service may run past the
// interval end.
func (uc *CreateBooking) checkWorkingHours(
	ctx context.Context,
	tx domain.TxRepository,
	b *models.Barber,
	date schedule.Date,
	start schedule.TimeOfDay,
) error {
	rows, err := tx.ListOverridesForDate(ctx, b.ID, date.String())
	if err != nil {
		return storeErr(err, "barber_not_found")
	}
	overrides := make([]schedule.Override, 0, len(rows))
	for _, r := range rows {
		overrides = append(overrides, r.Domain())
	}

	res := schedule.Resolve(date, b.Week(), overrides, uc.policy.Fallback)
	for _, iv := range res.Intervals {
		if start >= iv.Start && start < iv.End {
			return nil
		}
	}
	return httperr.ErrBusiness("outside_working_hours")
}

// startPayment asks the gateway for a checkout link. A failure leaves the
// booking pending without a link.
func (uc *CreateBooking) startPayment(ctx context.Context, ap *models.Appointment, svc *models.Service) string {
	if uc.payments == nil || ap.PriceCents <= 0 {
		return ""
	}

	pref, err := uc.payments.CreatePreference(ctx, domain.PreferenceInput{
		AppointmentID: ap.ID,
		Title:         svc.Name,
		PriceCents:    ap.PriceCents,
		PayerEmail:    ap.CustomerEmail,
	})
	if err != nil {
		uc.log.Warn("payment preference failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		return ""
	}

	if err := uc.repo.SetPaymentPreference(ctx, ap.ID, pref.ID); err != nil {
		uc.log.Warn("storing payment preference failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
	} else {
		ap.PaymentPreferenceID = pref.ID
	}
	return pref.CheckoutURL
}

func outcomeFor(err error) string {
	kind, _ := httperr.KindOf(err)
	switch kind {
	case httperr.KindConflict:
		return metrics.OutcomeConflict
	case httperr.KindNotFound:
		return metrics.OutcomeNotFound
	case httperr.KindValidation:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
