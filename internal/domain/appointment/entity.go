package appointment

import (
	"time"

	"github.com/facuperezm/barberia-sub000/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies next to ap. It returns changed=false when ap already
// has that status.
func Transition(ap *models.Appointment, next Status, now time.Time) (bool, error) {
	current := Status(ap.Status)
	if err := CanTransition(current, next); err != nil {
		return false, err
	}
	if current == next {
		return false, nil
	}

	ap.Status = string(next)
	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return true, nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	_, err := Transition(ap, StatusCancelled, now)
	return err
}

func Complete(ap *models.Appointment, now time.Time) error {
	_, err := Transition(ap, StatusCompleted, now)
	return err
}
