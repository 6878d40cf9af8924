package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// ApplyPayment applies a gateway payment notification to its appointment.
type ApplyPayment struct {
	payments PaymentGateway
	status   *UpdateStatus
	log      *zap.Logger
}

func NewApplyPayment(
	payments PaymentGateway,
	status *UpdateStatus,
	log *zap.Logger,
) *ApplyPayment {
	return &ApplyPayment{
		payments: payments,
		status:   status,
		log:      log,
	}
}

// Execute returns (nil, nil) when the payment does not change anything,
// such as a still-pending payment.
func (uc *ApplyPayment) Execute(
	ctx context.Context,
	paymentID string,
) (*models.Appointment, error) {

	if uc.payments == nil {
		return nil, httperr.ErrNotFound("payments_disabled")
	}
	if paymentID == "" {
		return nil, httperr.ErrValidation("invalid_input", httperr.FieldError{Field: "data.id", Message: "es obligatorio"})
	}

	outcome, err := uc.payments.PaymentOutcome(ctx, paymentID)
	if err != nil {
		return nil, httperr.ErrTransient("payment_lookup_failed", err)
	}

	next, ok := domain.StatusForPayment(outcome.State)
	if !ok {
		uc.log.Info("payment not final yet",
			zap.String("payment_id", paymentID),
			zap.String("state", string(outcome.State)),
		)
		return nil, nil
	}

	ap, err := uc.status.Execute(ctx, UpdateStatusInput{
		AppointmentID: outcome.AppointmentID,
		Status:        string(next),
		Actor:         audit.ActorWebhook,
		Source:        SourcePayment,
	})
	if err != nil {
		// A late notification for a finished appointment is not an error
		// the gateway can fix by retrying.
		if httperr.IsBusiness(err, "invalid_state") {
			uc.log.Info("payment ignored for terminal appointment",
				zap.Uint("appointment_id", outcome.AppointmentID),
				zap.String("payment_id", paymentID),
			)
			return nil, nil
		}
		return nil, err
	}
	return ap, nil
}
