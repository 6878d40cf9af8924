package appointment

// PaymentState is a gateway payment outcome reduced to what bookings care
// about.
type PaymentState string

const (
	PaymentSucceeded PaymentState = "succeeded"
	PaymentFailed    PaymentState = "failed"
	PaymentPending   PaymentState = "pending"
)

// StatusForPayment maps a payment outcome onto an appointment status.
// Pending payments leave the appointment untouched.
func StatusForPayment(state PaymentState) (Status, bool) {
	switch state {
	case PaymentSucceeded:
		return StatusConfirmed, true
	case PaymentFailed:
		return StatusCancelled, true
	default:
		return "", false
	}
}

type PreferenceInput struct {
	AppointmentID uint
	Title         string
	PriceCents    int64
	PayerEmail    string
}

type Preference struct {
	ID          string
	CheckoutURL string
}

type PaymentOutcome struct {
	AppointmentID uint
	State         PaymentState
}
