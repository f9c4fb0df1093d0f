// Package bus provides a small in-process event bus for incident lifecycle
// events. Subscribers receive events over buffered channels; a slow subscriber
// drops events rather than blocking publishers.
package bus

import (
	"log"
	"sync"
	"time"
)

const DefaultBufSize = 100

type EventType string

const (
	IncidentCreated EventType = "incident.created"
	IncidentUpdated EventType = "incident.updated"
	IncidentDeleted EventType = "incident.deleted"
)

// Event describes one incident lifecycle transition.
type Event struct {
	Type       EventType
	IncidentID string
	Incident   map[string]any
	Timestamp  time.Time
}

// Bus fans events out to all subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan Event
	buf    int
	closed bool
}

// New creates a bus whose subscriber channels hold bufSize events.
func New(bufSize int) *Bus {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}
	return &Bus{buf: bufSize}
}

// Subscribe registers a new subscriber channel. The channel is closed when the
// bus shuts down.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, b.buf)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers the event to every subscriber. Events are stamped with the
// current time when the caller leaves Timestamp zero.
func (b *Bus) Publish(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("[bus] dropping %s event for %s: subscriber buffer full", ev.Type, ev.IncidentID)
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
