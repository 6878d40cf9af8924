package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
	"github.com/facuperezm/barberia-sub000/internal/notify"
)

func seedAppointment(repo *memRepo, status domain.Status) uint {
	repo.nextID++
	id := repo.nextID
	repo.appts[id] = &models.Appointment{
		ID: id, BarberID: barberID, ServiceID: serviceID,
		Date: monday, Time: "09:00:00", DurationMinutes: 30,
		CustomerEmail: "ana@example.com", Status: string(status),
	}
	return id
}

func TestUpdateStatus(t *testing.T) {
	repo := seededRepo()
	h := newHarness(repo, nil)
	ctx := context.Background()
	id := seedAppointment(repo, domain.StatusPending)

	ap, err := h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "confirmed", Actor: "staff|1"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	assert.Equal(t, "confirmed", repo.appts[id].Status)

	// Same status again is a quiet no-op.
	_, err = h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.audit.count())

	ap, err = h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "completed"})
	require.NoError(t, err)
	assert.NotNil(t, ap.CompletedAt)

	_, err = h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "pending"})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	assert.Equal(t, []notify.Kind{notify.KindStatusChanged, notify.KindStatusChanged}, h.notifier.kinds())
}

func TestUpdateStatusErrors(t *testing.T) {
	repo := seededRepo()
	h := newHarness(repo, nil)
	ctx := context.Background()
	id := seedAppointment(repo, domain.StatusCancelled)

	_, err := h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "booked"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = h.status.Execute(ctx, UpdateStatusInput{AppointmentID: 404, Status: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"), "cancelled appointments stay cancelled")
}

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name   string
		start  domain.Status
		state  domain.PaymentState
		want   string
		noop   bool
	}{
		{name: "approved confirms", start: domain.StatusPending, state: domain.PaymentSucceeded, want: "confirmed"},
		{name: "rejected cancels", start: domain.StatusPending, state: domain.PaymentFailed, want: "cancelled"},
		{name: "in process waits", start: domain.StatusPending, state: domain.PaymentPending, want: "pending", noop: true},
		{name: "late approval for cancelled is ignored", start: domain.StatusCancelled, state: domain.PaymentSucceeded, want: "cancelled", noop: true},
		{name: "duplicate notification", start: domain.StatusConfirmed, state: domain.PaymentSucceeded, want: "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo()
			h := newHarness(repo, nil)
			id := seedAppointment(repo, tt.start)

			gw := &mockGateway{}
			gw.On("PaymentOutcome", context.Background(), "123").
				Return(domain.PaymentOutcome{AppointmentID: id, State: tt.state}, nil).Once()

			uc := NewApplyPayment(gw, h.status, zap.NewNop())
			ap, err := uc.Execute(context.Background(), "123")
			require.NoError(t, err)

			if tt.noop {
				assert.Nil(t, ap)
			} else {
				require.NotNil(t, ap)
			}
			assert.Equal(t, tt.want, repo.appts[id].Status)
			gw.AssertExpectations(t)
		})
	}
}

func TestApplyPaymentErrors(t *testing.T) {
	h := newHarness(seededRepo(), nil)

	_, err := NewApplyPayment(nil, h.status, zap.NewNop()).Execute(context.Background(), "1")
	assert.True(t, httperr.IsBusiness(err, "payments_disabled"))

	gw := &mockGateway{}
	_, err = NewApplyPayment(gw, h.status, zap.NewNop()).Execute(context.Background(), "")
	assert.True(t, httperr.IsBusiness(err, "invalid_input"))

	gw.On("PaymentOutcome", context.Background(), "9").Return(domain.PaymentOutcome{}, errors.New("timeout")).Once()
	_, err = NewApplyPayment(gw, h.status, zap.NewNop()).Execute(context.Background(), "9")
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindTransient, kind)

	gw.On("PaymentOutcome", context.Background(), "10").
		Return(domain.PaymentOutcome{AppointmentID: 999, State: domain.PaymentSucceeded}, nil).Once()
	_, err = NewApplyPayment(gw, h.status, zap.NewNop()).Execute(context.Background(), "10")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestListAppointments(t *testing.T) {
	repo := seededRepo()
	h := newHarness(repo, nil)
	ctx := context.Background()

	for _, in := range []CreateBookingInput{
		bookingInput(monday, "11:00"),
		bookingInput(monday, "09:00"),
		bookingInput("2026-03-16", "09:00"),
		bookingInput("2026-04-06", "09:00"),
	} {
		_, err := h.booking.Execute(ctx, in)
		require.NoError(t, err)
	}

	day, err := NewListAppointmentsByDate(repo).Execute(ctx, barberID, monday)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "09:00:00", day[0].Time)

	month, err := NewListAppointmentsByMonth(repo).Execute(ctx, barberID, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, month, 3)

	_, err = NewListAppointmentsByMonth(repo).Execute(ctx, barberID, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = NewListAppointmentsByDate(repo).Execute(ctx, barberID, "marzo")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestApplyPaymentAfterCancelAndRebook(t *testing.T) {
	repo := seededRepo()
	h := newHarness(repo, nil)
	ctx := context.Background()
	id := seedAppointment(repo, domain.StatusPending)
	repo.appts[id].PaymentPreferenceID = "pref-1"

	var rebooked uint
	gw := &mockGateway{}
	gw.On("PaymentOutcome", ctx, "77").
		Run(func(mock.Arguments) {
			// Between the gateway lookup and the status write, staff cancels
			// and another customer takes the freed slot.
			_, err := h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "cancelled", Actor: "staff|1"})
			require.NoError(t, err)
			res, err := h.booking.Execute(ctx, bookingInput(monday, "09:00"))
			require.NoError(t, err)
			rebooked = res.Appointment.ID
		}).
		Return(domain.PaymentOutcome{AppointmentID: id, State: domain.PaymentSucceeded}, nil).Once()

	ap, err := NewApplyPayment(gw, h.status, zap.NewNop()).Execute(ctx, "77")
	require.NoError(t, err)
	assert.Nil(t, ap)

	assert.Equal(t, "cancelled", repo.appts[id].Status)
	assert.Equal(t, "pref-1", repo.appts[id].PaymentPreferenceID)

	live := repo.liveLocked(barberID, monday)
	require.Len(t, live, 1)
	assert.Equal(t, rebooked, live[0].ID)
	gw.AssertExpectations(t)
}

func TestConcurrentCancelAndConfirmKeepsCancelled(t *testing.T) {
	repo := seededRepo()
	h := newHarness(repo, nil)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		id := seedAppointment(repo, domain.StatusPending)

		var wg sync.WaitGroup
		var confirmErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "cancelled"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, confirmErr = h.status.Execute(ctx, UpdateStatusInput{AppointmentID: id, Status: "confirmed", Source: SourcePayment})
		}()
		wg.Wait()

		if confirmErr != nil {
			assert.True(t, httperr.IsBusiness(confirmErr, "invalid_state"), "unexpected error: %v", confirmErr)
		}
		assert.Equal(t, "cancelled", repo.appts[id].Status)
	}
}
