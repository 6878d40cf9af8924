package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Actors that are not identity-provider subjects.
const (
	ActorPublic  = "public"
	ActorWebhook = "webhook"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Auditor is what use cases depend on; *Dispatcher implements it.
type Auditor interface {
	Dispatch(ev Event)
}

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path. A full queue drops
// the event; auditing never fails a request.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
