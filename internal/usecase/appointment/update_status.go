package appointment

import (
	"context"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/clock"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/metrics"
	"github.com/facuperezm/barberia-sub000/internal/models"
	"github.com/facuperezm/barberia-sub000/internal/notify"
)

// Sources of a status change.
const (
	SourceStaff   = "staff"
	SourcePayment = "payment"
)

type UpdateStatusInput struct {
	AppointmentID uint
	Status        string
	Actor         string
	Source        string
}

type UpdateStatus struct {
	repo     domain.Repository
	clock    clock.Clock
	audit    audit.Auditor
	notifier Notifier
	metrics  *metrics.Metrics
}

func NewUpdateStatus(
	repo domain.Repository,
	clk clock.Clock,
	audit audit.Auditor,
	notifier Notifier,
	m *metrics.Metrics,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		clock:    clk,
		audit:    audit,
		notifier: notifier,
		metrics:  m,
	}
}

// Execute moves an appointment to a new status. The transition is checked
// and written while the appointment row is locked. Repeating the current
// status returns the appointment unchanged and emits nothing.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var previous string
	ap, changed, err := uc.repo.ChangeAppointment(ctx, in.AppointmentID,
		func(ap *models.Appointment) (bool, error) {
			previous = ap.Status
			return domain.Transition(ap, next, uc.clock.Now())
		},
	)
	if err != nil {
		return nil, storeErr(err, "appointment_not_found")
	}
	if !changed {
		return ap, nil
	}

	source := in.Source
	if source == "" {
		source = SourceStaff
	}
	uc.metrics.ObserveTransition(source, ap.Status)

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from":   previous,
			"to":     ap.Status,
			"source": source,
		},
	})
	uc.notifier.Notify(event(notify.KindStatusChanged, ap))

	return ap, nil
}
