package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Kind string

const (
	KindBookingCreated Kind = "appointment_created"
	KindStatusChanged  Kind = "appointment_status_changed"
)

// Event describes an appointment change after it has been committed.
type Event struct {
	Kind          Kind   `json:"kind"`
	AppointmentID uint   `json:"appointment_id"`
	BarberID      uint   `json:"barber_id"`
	BarberName    string `json:"barber_name,omitempty"`
	ServiceName   string `json:"service_name,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"-"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	PaymentURL    string `json:"-"`
}

type Sender interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to every sender from a single worker. A full
// queue drops the event.
type Dispatcher struct {
	senders []Sender
	log     *zap.Logger
	queue   chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(log *zap.Logger, senders ...Sender) *Dispatcher {
	d := &Dispatcher{
		senders: senders,
		log:     log,
		queue:   make(chan Event, 100),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.senders {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s.Send(ctx, ev); err != nil {
				d.log.Warn("notification failed",
					zap.String("sender", s.Name()),
					zap.String("kind", string(ev.Kind)),
					zap.Uint("appointment_id", ev.AppointmentID),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Notify(ev Event) {
	if len(d.senders) == 0 {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event", zap.Uint("appointment_id", ev.AppointmentID))
	}
}

func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
