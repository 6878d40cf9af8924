package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/clock"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
	"github.com/facuperezm/barberia-sub000/internal/notify"
	ucschedule "github.com/facuperezm/barberia-sub000/internal/usecase/schedule"
)

// memRepo is an in-memory store. WithinTx holds txMu for the whole
// transaction, standing in for the barber row lock.
type memRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	barbers   map[uint]*models.Barber
	services  map[uint]*models.Service
	overrides []models.ScheduleOverride
	appts     map[uint]*models.Appointment
	nextID    uint

	fail             error
	rejectNextInsert bool
	txCalls          int
}

var _ domain.Repository = (*memRepo)(nil)
var _ ucschedule.Reader = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		barbers:  map[uint]*models.Barber{},
		services: map[uint]*models.Service{},
		appts:    map[uint]*models.Appointment{},
	}
}

func notFound(what string) error {
	return errs.Mark(errs.New(what+" missing"), errs.ErrNotFound)
}

func (r *memRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	b, ok := r.barbers[id]
	if !ok {
		return nil, notFound("barber")
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	s, ok := r.services[id]
	if !ok {
		return nil, notFound("service")
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) ListOverridesForDate(_ context.Context, barberID uint, date string) ([]models.ScheduleOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ScheduleOverride
	for _, o := range r.overrides {
		if o.BarberID == barberID && o.Date == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memRepo) ListLiveAppointments(_ context.Context, barberID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	return r.liveLocked(barberID, date), nil
}

func (r *memRepo) liveLocked(barberID uint, date string) []models.Appointment {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.BarberID == barberID && a.Date == date && domain.Status(a.Status).IsLive() {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// ChangeAppointment holds mu across load, apply and write, as the row lock
// does in Postgres.
func (r *memRepo) ChangeAppointment(
	_ context.Context,
	id uint,
	apply func(ap *models.Appointment) (bool, error),
) (*models.Appointment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, false, notFound("appointment")
	}
	cp := *a
	changed, err := apply(&cp)
	if err != nil {
		return nil, false, err
	}
	if changed {
		a.Status = cp.Status
		a.CancelledAt = cp.CancelledAt
		a.CompletedAt = cp.CompletedAt
	}
	return &cp, changed, nil
}

func (r *memRepo) SetPaymentPreference(_ context.Context, id uint, pref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return notFound("appointment")
	}
	a.PaymentPreferenceID = pref
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, from, to string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.BarberID == barberID && a.Date >= from && a.Date <= to {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *memRepo) WithinTx(ctx context.Context, fn func(tx domain.TxRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	r.txCalls++
	r.mu.Unlock()

	tx := &memTx{repo: r}
	if err := fn(tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range tx.pending {
		r.nextID++
		a.ID = r.nextID
		a.CreatedAt = time.Now()
		cp := *a
		r.appts[a.ID] = &cp
	}
	return nil
}

type memTx struct {
	repo    *memRepo
	pending []*models.Appointment
}

func (t *memTx) LockBarber(ctx context.Context, id uint) (*models.Barber, error) {
	return t.repo.GetBarber(ctx, id)
}

func (t *memTx) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return t.repo.GetService(ctx, id)
}

func (t *memTx) ListOverridesForDate(ctx context.Context, barberID uint, date string) ([]models.ScheduleOverride, error) {
	return t.repo.ListOverridesForDate(ctx, barberID, date)
}

func (t *memTx) ListLiveAppointments(ctx context.Context, barberID uint, date string) ([]models.Appointment, error) {
	return t.repo.ListLiveAppointments(ctx, barberID, date)
}

func (t *memTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	if t.repo.rejectNextInsert {
		t.repo.rejectNextInsert = false
		return errs.Mark(errs.New("duplicate key value violates unique constraint"), errs.ErrConflict)
	}
	t.pending = append(t.pending, ap)
	return nil
}

// ======================================================
// fixtures
// ======================================================

var (
	buenosAires = time.FixedZone("ART", -3*3600)
	// Sunday 2026-03-08 08:00 local; every test date is in the future.
	testNow = time.Date(2026, 3, 8, 8, 0, 0, 0, buenosAires)
)

const (
	barberID  uint = 1
	serviceID uint = 10
	monday         = "2026-03-09"
)

func seededRepo() *memRepo {
	r := newMemRepo()

	var week schedule.WeeklySchedule
	week[time.Monday] = schedule.DaySchedule{IsWorking: true, Slots: []schedule.TimeRange{{Start: "09:00", End: "12:00"}}}
	r.barbers[barberID] = &models.Barber{ID: barberID, Name: "Juan", Active: true, WeeklySchedule: datatypes.NewJSONType(week)}
	r.services[serviceID] = &models.Service{ID: serviceID, Name: "Corte", DurationMinutes: 30, PriceCents: 800000, Active: true}
	r.services[serviceID+1] = &models.Service{ID: serviceID + 1, Name: "Corte y barba", DurationMinutes: 60, PriceCents: 1200000, Active: true}
	return r
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) kinds() []notify.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Kind, len(n.events))
	for i, ev := range n.events {
		out[i] = ev.Kind
	}
	return out
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePreference(ctx context.Context, in domain.PreferenceInput) (domain.Preference, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Preference), args.Error(1)
}

func (m *mockGateway) PaymentOutcome(ctx context.Context, paymentID string) (domain.PaymentOutcome, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(domain.PaymentOutcome), args.Error(1)
}

type harness struct {
	repo     *memRepo
	clock    *clock.MockClock
	audit    *recordingAuditor
	notifier *recordingNotifier
	policy   Policy

	availability *GetAvailability
	booking      *CreateBooking
	status       *UpdateStatus
}

func newHarness(repo *memRepo, payments PaymentGateway) *harness {
	fallback := schedule.Interval{Start: schedule.MustTimeOfDay("09:00"), End: schedule.MustTimeOfDay("18:00")}
	h := &harness{
		repo:     repo,
		clock:    clock.NewMockClock(testNow),
		audit:    &recordingAuditor{},
		notifier: &recordingNotifier{},
		policy:   Policy{Location: buenosAires, Fallback: fallback},
	}
	resolver := ucschedule.NewResolveSchedule(repo, fallback)

	h.availability = NewGetAvailability(repo, resolver, h.clock, h.policy, nil)
	h.booking = NewCreateBooking(repo, h.clock, h.policy, h.audit, h.notifier, payments, nil, zap.NewNop())
	h.status = NewUpdateStatus(repo, h.clock, h.audit, h.notifier, nil)
	return h
}

func bookingInput(date, at string) CreateBookingInput {
	return CreateBookingInput{
		BarberID:      barberID,
		ServiceID:     serviceID,
		CustomerName:  "Ana Gómez",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "+54 11 5555-1234",
		Date:          date,
		Time:          at,
	}
}
