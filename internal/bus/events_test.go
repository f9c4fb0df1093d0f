package bus

import (
	"testing"
	"time"
)

func TestPublishFanOut(t *testing.T) {
	b := New(4)
	defer b.Close()

	first := b.Subscribe()
	second := b.Subscribe()

	b.Publish(Event{Type: IncidentCreated, IncidentID: "INC-1A2B3C4D"})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case ev := <-ch:
			if ev.Type != IncidentCreated || ev.IncidentID != "INC-1A2B3C4D" {
				t.Fatalf("event = %+v", ev)
			}
			if ev.Timestamp.IsZero() {
				t.Fatal("timestamp not stamped")
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	b := New(1)
	defer b.Close()

	ch := b.Subscribe()
	b.Publish(Event{Type: IncidentCreated, IncidentID: "INC-00000001"})
	b.Publish(Event{Type: IncidentUpdated, IncidentID: "INC-00000002"}) // dropped

	ev := <-ch
	if ev.Type != IncidentCreated {
		t.Fatalf("first event = %+v", ev)
	}
	select {
	case extra := <-ch:
		t.Fatalf("expected drop, got %+v", extra)
	default:
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	b := New(1)
	ch := b.Subscribe()
	b.Close()

	if _, ok := <-ch; ok {
		t.Fatal("subscriber channel must be closed")
	}

	// Publishing and closing again are safe no-ops.
	b.Publish(Event{Type: IncidentDeleted})
	b.Close()

	if _, ok := <-b.Subscribe(); ok {
		t.Fatal("subscribing after close must yield a closed channel")
	}
}
