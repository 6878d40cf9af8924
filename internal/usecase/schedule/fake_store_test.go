package schedule

import (
	"context"
	"sort"
	"sync"

	"gorm.io/datatypes"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

type memStore struct {
	mu        sync.Mutex
	barbers   map[uint]*models.Barber
	overrides map[uint]*models.ScheduleOverride
	nextID    uint
	fail      error
}

func newMemStore() *memStore {
	return &memStore{
		barbers:   map[uint]*models.Barber{},
		overrides: map[uint]*models.ScheduleOverride{},
	}
}

func (s *memStore) addBarber(id uint, week domain.WeeklySchedule) {
	s.barbers[id] = &models.Barber{ID: id, Name: "Juan", Active: true, WeeklySchedule: datatypes.NewJSONType(week)}
}

func (s *memStore) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	b, ok := s.barbers[id]
	if !ok {
		return nil, errs.Mark(errs.New("barber missing"), errs.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) ListOverridesForDate(ctx context.Context, barberID uint, date string) ([]models.ScheduleOverride, error) {
	return s.ListOverrides(ctx, barberID, date, date)
}

func (s *memStore) SaveOverride(_ context.Context, o *models.ScheduleOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.overrides {
		if existing.BarberID == o.BarberID && existing.Date == o.Date {
			o.ID = id
			cp := *o
			s.overrides[id] = &cp
			return nil
		}
	}
	s.nextID++
	o.ID = s.nextID
	cp := *o
	s.overrides[o.ID] = &cp
	return nil
}

func (s *memStore) GetOverride(_ context.Context, id uint) (*models.ScheduleOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overrides[id]
	if !ok {
		return nil, errs.Mark(errs.New("override missing"), errs.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (s *memStore) ListOverrides(_ context.Context, barberID uint, from, to string) ([]models.ScheduleOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ScheduleOverride
	for _, o := range s.overrides {
		if o.BarberID != barberID {
			continue
		}
		if (from != "" && o.Date < from) || (to != "" && o.Date > to) {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) DeleteOverride(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, id)
	return nil
}

func (s *memStore) UpdateWeeklySchedule(_ context.Context, barberID uint, week domain.WeeklySchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.barbers[barberID]
	if !ok {
		return errs.Mark(errs.New("barber missing"), errs.ErrNotFound)
	}
	b.WeeklySchedule = datatypes.NewJSONType(week)
	return nil
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Action
	}
	return out
}
