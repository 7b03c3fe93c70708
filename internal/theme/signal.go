package theme

import (
	"sync"
	"sync/atomic"
)

// Signal is the shared theme flag. Reads are lock-free so renderers can
// poll it once per frame; writers may be any goroutine.
type Signal struct {
	mode atomic.Int32

	mu   sync.Mutex
	subs map[chan Mode]struct{}
}

// NewSignal creates a signal holding the initial mode.
func NewSignal(initial Mode) *Signal {
	s := &Signal{subs: make(map[chan Mode]struct{})}
	s.mode.Store(int32(initial))
	return s
}

// Mode returns the current mode.
func (s *Signal) Mode() Mode {
	return Mode(s.mode.Load())
}

// Dark reports whether the current mode is dark.
func (s *Signal) Dark() bool {
	return s.Mode() == Dark
}

// Set stores a mode and notifies subscribers if it changed.
func (s *Signal) Set(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if Mode(s.mode.Swap(int32(m))) != m {
		s.publishLocked(m)
	}
}

// Toggle flips the mode and returns the new value.
func (s *Signal) Toggle() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Mode(s.mode.Load()).Toggle()
	s.mode.Store(int32(next))
	s.publishLocked(next)
	return next
}

// Subscribe returns a channel that receives the mode after each change.
// The channel holds only the latest value; a slow reader skips stale modes.
func (s *Signal) Subscribe() <-chan Mode {
	ch := make(chan Mode, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
// Unknown or already removed channels are ignored.
func (s *Signal) Unsubscribe(ch <-chan Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.subs {
		if c == ch {
			delete(s.subs, c)
			close(c)
			return
		}
	}
}

func (s *Signal) publishLocked(m Mode) {
	for ch := range s.subs {
		// Drop the stale value, if any, then deliver the latest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- m:
		default:
		}
	}
}
