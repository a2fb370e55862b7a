package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bluekey_backend/internal/model"
)

func TestBus_DeliversToSubscriber(t *testing.T) {
	bus := NewBus()
	defer bus.Stop()

	got := make(chan Event, 1)
	bus.Subscribe(LeadCaptured, func(e Event) {
		got <- e
	})

	l := &model.Lead{Name: "Jordan Blake"}
	bus.Publish(Event{Type: LeadCaptured, Lead: l})

	select {
	case e := <-got:
		assert.Equal(t, LeadCaptured, e.Type)
		assert.Equal(t, "Jordan Blake", e.Lead.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}
}

func TestBus_OnlyMatchingTypeIsDelivered(t *testing.T) {
	bus := NewBus()
	defer bus.Stop()

	captured := make(chan Event, 2)
	bus.Subscribe(NoteAdded, func(e Event) {
		captured <- e
	})

	bus.Publish(Event{Type: LeadStatusChanged})
	bus.Publish(Event{Type: NoteAdded})

	select {
	case e := <-captured:
		assert.Equal(t, NoteAdded, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case e := <-captured:
		t.Fatalf("unexpected extra event: %s", e.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_MultipleSubscribersRunInOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Stop()

	order := make(chan int, 2)
	bus.Subscribe(FollowUpScheduled, func(Event) { order <- 1 })
	bus.Subscribe(FollowUpScheduled, func(Event) { order <- 2 })

	bus.Publish(Event{Type: FollowUpScheduled})

	for want := 1; want <= 2; want++ {
		select {
		case got := <-order:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatal("handler chain stalled")
		}
	}
}

func TestBus_PublishAfterStopIsANoOp(t *testing.T) {
	bus := NewBus()

	delivered := make(chan Event, 1)
	bus.Subscribe(LeadCaptured, func(e Event) {
		delivered <- e
	})

	bus.Stop()
	bus.Publish(Event{Type: LeadCaptured})

	select {
	case <-delivered:
		t.Fatal("event delivered after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}
