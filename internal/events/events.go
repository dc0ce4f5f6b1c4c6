package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TypeExerciseReady = "exercise.ready"
	TypeRefillFailed  = "exercise.refill_failed"
)

// Event announces a change in the exercise cache.
type Event struct {
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	ExerciseID uuid.UUID `json:"exercise_id,omitempty"`
	CacheSize  int       `json:"cache_size"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe delivers events to onEvent until ctx is done.
	Subscribe(ctx context.Context, onEvent func(Event)) error
	Close() error
}

// NoopBus drops every event. It is used when REDIS_ADDR is unset.
type NoopBus struct{}

func (NoopBus) Publish(context.Context, Event) error         { return nil }
func (NoopBus) Subscribe(context.Context, func(Event)) error { return nil }
func (NoopBus) Close() error                                 { return nil }

// MemoryBus fans events out to in-process subscribers synchronously.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[int]func(Event)
	next int
	sent []Event
}

func NewMemoryBus() *MemoryBus { return &MemoryBus{subs: map[int]func(Event){}} }

func (b *MemoryBus) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	b.sent = append(b.sent, ev)
	subs := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, onEvent func(Event)) error {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = onEvent
	b.mu.Unlock()
	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	})
	return nil
}

func (b *MemoryBus) Close() error { return nil }

// Sent returns a copy of every event published so far.
func (b *MemoryBus) Sent() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event(nil), b.sent...)
}
