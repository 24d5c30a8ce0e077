package notify

import (
	"context"
	"sync"
)

// Board is an in-process message surface holding the current notification.
// Writers may interleave; the last write wins.
type Board struct {
	mu      sync.RWMutex
	current *Event
	history []Event
	limit   int
}

// NewBoard creates a board that remembers up to limit past events.
func NewBoard(limit int) *Board {
	return &Board{limit: limit}
}

func (b *Board) Notify(ctx context.Context, err error) {
	ev := NewEvent(ctx, err)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &ev
	if b.limit > 0 {
		b.history = append(b.history, ev)
		if len(b.history) > b.limit {
			b.history = b.history[len(b.history)-b.limit:]
		}
	}
}

func (b *Board) Clear(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}

// Current returns the displayed event, if any.
func (b *Board) Current() (Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.current == nil {
		return Event{}, false
	}
	return *b.current, true
}

// History returns the most recent events, oldest first.
func (b *Board) History() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}
