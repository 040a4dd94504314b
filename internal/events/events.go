// file: internal/events/events.go
package events

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// ===============================
// DOMAIN EVENTS
// ===============================

// Event is an in-process domain event. Events are best-effort
// notifications: publishing never blocks request handling and a slow
// subscriber drops events rather than stalling the bus.
type Event interface {
	EventType() string
}

// UserRegistered fires after a new account and its progress row are
// provisioned.
type UserRegistered struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

func (UserRegistered) EventType() string { return "user.registered" }

// CompletionRecorded fires after a completion is applied to the ledger.
// Replays that were deduplicated do not fire.
type CompletionRecorded struct {
	UserID uuid.UUID `json:"user_id"`
	UnitID string    `json:"unit_id"`
	Points int       `json:"points"`
}

func (CompletionRecorded) EventType() string { return "progress.completion_recorded" }

// BadgeEarned fires once per badge per user.
type BadgeEarned struct {
	UserID  uuid.UUID `json:"user_id"`
	BadgeID string    `json:"badge_id"`
}

func (BadgeEarned) EventType() string { return "progress.badge_earned" }

// RankChanged fires when accumulated points cross a rank threshold.
type RankChanged struct {
	UserID uuid.UUID `json:"user_id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
}

func (RankChanged) EventType() string { return "progress.rank_changed" }

// ===============================
// EVENT BUS
// ===============================

// Handler consumes a single event. Handlers run on the bus worker, so
// they should be quick; anything slow belongs behind its own queue.
type Handler func(ctx context.Context, e Event)

// Bus is a buffered in-process pub/sub. A nil *Bus is valid and drops
// every publish, which keeps tests free of wiring they don't exercise.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	queue    chan Event
	dropped  int64
	done     chan struct{}
	closing  sync.Once
	logger   *zap.Logger
}

// NewBus starts a bus with a single dispatch worker and the given
// queue depth.
func NewBus(depth int, logger *zap.Logger) *Bus {
	if depth <= 0 {
		depth = 256
	}
	b := &Bus{
		handlers: make(map[string][]Handler),
		queue:    make(chan Event, depth),
		done:     make(chan struct{}),
		logger:   logger,
	}
	go b.dispatch()
	return b
}

// Subscribe registers a handler for one event type. Subscriptions are
// expected at wiring time, before traffic flows.
func (b *Bus) Subscribe(eventType string, h Handler) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish enqueues an event without blocking. When the queue is full
// the event is dropped and counted.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	select {
	case b.queue <- e:
	default:
		b.mu.Lock()
		b.dropped++
		b.mu.Unlock()
		b.logger.Warn("event dropped, queue full", zap.String("event_type", e.EventType()))
	}
}

// Dropped reports how many events were discarded on a full queue.
func (b *Bus) Dropped() int64 {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Close drains the queue and stops the worker. Safe to call more than
// once.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.closing.Do(func() {
		close(b.queue)
		<-b.done
	})
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for e := range b.queue {
		b.mu.RLock()
		hs := b.handlers[e.EventType()]
		b.mu.RUnlock()
		for _, h := range hs {
			b.deliver(h, e)
		}
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", e.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h(ctx, e)
}
