// Package event provides the in-process publish/subscribe bus that
// decouples the capture and admin flows from their side effects (agent
// notification email, metrics).
package event

import (
	"sync/atomic"

	"bluekey_backend/internal/model"
)

type Type string

const (
	LeadCaptured      Type = "lead.captured"
	LeadStatusChanged Type = "lead.status_changed"
	NoteAdded         Type = "lead.note_added"
	FollowUpScheduled Type = "lead.follow_up_scheduled"
)

type Event struct {
	Type     Type
	Lead     *model.Lead
	Activity *model.LeadActivity
}

type Handler func(Event)

type subscription struct {
	t  Type
	fn Handler
}

// Bus fans events out to subscribed handlers.
//
// Concurrency model: a single internal loop (goroutine) owns the handler
// map. Subscribe and Publish communicate with it through channels, so no
// mutexes are required. Handlers for one event run sequentially in their
// own goroutine so a slow handler (an email send) never blocks the loop.
type Bus struct {
	subscribeCh chan subscription
	publishCh   chan Event

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

func NewBus() *Bus {
	b := &Bus{
		subscribeCh: make(chan subscription),
		publishCh:   make(chan Event, 256),
		stopCh:      make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Bus) run() {
	defer close(b.stopped)

	handlers := make(map[Type][]Handler)

	for {
		select {
		case <-b.stopCh:
			return
		case sub := <-b.subscribeCh:
			handlers[sub.t] = append(handlers[sub.t], sub.fn)
		case e := <-b.publishCh:
			hs := handlers[e.Type]
			if len(hs) == 0 {
				continue
			}
			go func(hs []Handler, e Event) {
				for _, h := range hs {
					h(e)
				}
			}(hs, e)
		}
	}
}

// Subscribe registers fn for events of type t. Handlers registered after
// an event was published do not see it.
func (b *Bus) Subscribe(t Type, fn Handler) {
	if b.closed.Load() {
		return
	}
	select {
	case b.subscribeCh <- subscription{t: t, fn: fn}:
	case <-b.stopCh:
	}
}

// Publish enqueues e for delivery. Non-blocking: if the bus buffer is
// full the event is dropped rather than stalling the request path.
func (b *Bus) Publish(e Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- e:
	default:
	}
}

func (b *Bus) Stop() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
		<-b.stopped
	}
}
