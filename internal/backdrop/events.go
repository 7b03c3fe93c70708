package backdrop

import (
	"time"

	"github.com/litescript/ls-starfield/internal/theme"
)

// EventType represents the type of lifecycle event.
type EventType string

const (
	EventMounted      EventType = "MOUNTED"
	EventResized      EventType = "RESIZED"
	EventThemeChanged EventType = "THEME_CHANGED"
	EventUnmounted    EventType = "UNMOUNTED"
)

// Event is one lifecycle change of the backdrop.
type Event struct {
	Type      EventType  `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Width     float64    `json:"width,omitempty"`
	Height    float64    `json:"height,omitempty"`
	Mode      theme.Mode `json:"mode"`
}

// addEvent adds an event to the ring buffer.
func (b *Backdrop) addEvent(e Event) {
	if len(b.events) < b.maxEvents {
		b.events = append(b.events, e)
	} else {
		b.events[b.eventWriteAt] = e
		b.eventWriteAt = (b.eventWriteAt + 1) % b.maxEvents
	}
}

// Events returns the lifecycle log in chronological order.
func (b *Backdrop) Events() []Event {
	if len(b.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(b.events) < b.maxEvents {
		result := make([]Event, len(b.events))
		copy(result, b.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, b.maxEvents)
	for i := 0; i < b.maxEvents; i++ {
		result[i] = b.events[(b.eventWriteAt+i)%b.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (b *Backdrop) RecentEvents(n int) []Event {
	all := b.Events()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
