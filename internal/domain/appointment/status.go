package appointment

import "github.com/facuperezm/barberia-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// LiveStatuses are the statuses that occupy a barber's time.
var LiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", httperr.FieldError{
		Field:   "status",
		Message: "debe ser pending, confirmed, cancelled o completed",
	})
}

func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether current may move to next. Setting the same
// status again is allowed and treated as a no-op by Transition.
func CanTransition(current, next Status) error {
	if current == next {
		return nil
	}

	switch current {
	case StatusPending:
		if next == StatusConfirmed || next == StatusCancelled || next == StatusCompleted {
			return nil
		}
	case StatusConfirmed:
		if next == StatusCancelled || next == StatusCompleted {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPending
}
