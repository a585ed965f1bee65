package signal

import (
	"sync"
	"time"

	"Puzzle3D/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is a named notification. Most puzzle signals carry no payload beyond
// the name and the emitting component; Data is available for hosts that need
// more.
type Event struct {
	Name      string
	Source    string
	Timestamp time.Time
	Data      any
}

// Handler consumes one event. Handlers run synchronously on the publishing
// goroutine; a panicking handler is logged and isolated so the remaining
// handlers still run.
type Handler func(Event)

// Subscription is a handle returned by Subscribe. Cancel detaches the handler;
// canceling twice is harmless.
type Subscription struct {
	id      string
	name    string
	active  bool
	deliver Handler
	cancel  func()
}

func (s *Subscription) ID() string   { return s.id }
func (s *Subscription) Name() string { return s.name }

func (s *Subscription) IsActive() bool {
	return s.active
}

func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
	s.active = false
}

// Metrics counts hub activity, mostly for tests and the demo binary.
type Metrics struct {
	Published uint64
	Delivered uint64
	Panics    uint64
}

// Hub is an in-memory pub/sub surface for zero-argument puzzle signals.
// Delivery is synchronous and follows subscription registration order, which
// keeps event handling deterministic inside a single simulation tick.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string][]*Subscription
	metrics Metrics
	log     *zap.Logger
}

// NewHub creates an empty hub. A nil logger falls back to the shared one.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[string][]*Subscription),
		log:  logger.Or(log),
	}
}

// Subscribe attaches a handler to a signal name. A nil handler yields an
// inert, already-canceled subscription and a warning.
func (h *Hub) Subscribe(name string, fn Handler) *Subscription {
	if fn == nil {
		h.log.Warn("Subscribe called with nil handler", zap.String("signal", name))
		return &Subscription{id: uuid.NewString(), name: name}
	}

	sub := &Subscription{id: uuid.NewString(), name: name, active: true, deliver: fn}
	sub.cancel = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.subs[name]
		for i, s := range list {
			if s == sub {
				h.subs[name] = append(list[:i], list[i+1:]...)
				break
			}
		}
		sub.active = false
	}

	h.mu.Lock()
	h.subs[name] = append(h.subs[name], sub)
	h.mu.Unlock()

	return sub
}

// Emit publishes a bare signal with no payload.
func (h *Hub) Emit(name, source string) {
	h.Publish(Event{Name: name, Source: source, Timestamp: time.Now()})
}

// Publish delivers the event to every active subscription of its name, in
// registration order.
func (h *Hub) Publish(evt Event) {
	h.mu.RLock()
	list := h.subs[evt.Name]
	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)
	h.mu.RUnlock()

	h.mu.Lock()
	h.metrics.Published++
	h.mu.Unlock()

	for _, sub := range snapshot {
		if !sub.active {
			continue
		}
		h.dispatch(sub, evt)
	}
}

func (h *Hub) dispatch(sub *Subscription, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			h.mu.Lock()
			h.metrics.Panics++
			h.mu.Unlock()
			h.log.Error("Signal handler panicked",
				zap.String("signal", evt.Name),
				zap.String("subscription", sub.id),
				zap.Any("panic", r))
		}
	}()
	sub.deliver(evt)
	h.mu.Lock()
	h.metrics.Delivered++
	h.mu.Unlock()
}

// Close cancels every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	for _, list := range h.subs {
		for _, sub := range list {
			sub.active = false
			sub.cancel = nil
		}
	}
	h.subs = make(map[string][]*Subscription)
	h.mu.Unlock()
}

// Metrics returns a copy of the hub counters.
func (h *Hub) Metrics() Metrics {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.metrics
}

// SubscriberCount reports active subscriptions for a signal name.
func (h *Hub) SubscriberCount(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[name])
}
