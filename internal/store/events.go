package store

import "sync"

// Collection names the four persisted entity collections.
type Collection string

const (
	Projects Collection = "projects"
	Tasks    Collection = "tasks"
	Notes    Collection = "notes"
	Settings Collection = "settings"
)

// AllCollections lists every collection, in import/clear order.
var AllCollections = []Collection{Projects, Tasks, Notes, Settings}

// Event describes one committed write. Subscribers treat events as
// invalidation signals and re-read from the store.
type Event struct {
	Collection Collection
	Op         string // "put", "delete", "clear"
	ID         string // primary key, empty for bulk ops
}

// Bus is the in-process change-notification registry. Writes publish
// events after commit; live queries subscribe by collection.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscription receives events for a set of collections on C. Each
// subscription runs its own pump goroutine with an unbounded pending
// queue, so a slow consumer never blocks the writer and events are never
// dropped.
type Subscription struct {
	bus         *Bus
	collections map[Collection]struct{}
	in          chan Event
	out         chan Event
	closeOnce   sync.Once
}

// C is the receive side of the subscription.
func (s *Subscription) C() <-chan Event { return s.out }

// Close unregisters the subscription and closes its channel. The bus lock
// serializes Close against Publish so no event is sent on a closed channel.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		close(s.in)
		s.bus.mu.Unlock()
	})
}

// Subscribe registers a subscription for the given collections. With no
// collections given, the subscription receives every event.
func (b *Bus) Subscribe(collections ...Collection) *Subscription {
	sub := &Subscription{
		bus: b,
		in:  make(chan Event),
		out: make(chan Event),
	}
	if len(collections) > 0 {
		sub.collections = make(map[Collection]struct{}, len(collections))
		for _, c := range collections {
			sub.collections[c] = struct{}{}
		}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go sub.pump()
	return sub
}

// Publish delivers events to every matching subscription. The bus lock is
// held for the whole delivery; subscription pumps accept events without
// taking it, so delivery cannot deadlock.
func (b *Bus) Publish(events ...Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		for _, e := range events {
			if s.matches(e.Collection) {
				s.in <- e
			}
		}
	}
}

func (s *Subscription) matches(c Collection) bool {
	if s.collections == nil {
		return true
	}
	_, ok := s.collections[c]
	return ok
}

// pump decouples producers from the consumer: incoming events queue in
// pending until the consumer reads them.
func (s *Subscription) pump() {
	var pending []Event
	in := s.in
	for {
		var out chan Event
		var next Event
		if len(pending) > 0 {
			out = s.out
			next = pending[0]
		} else if in == nil {
			close(s.out)
			return
		}

		select {
		case e, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, e)
		case out <- next:
			pending = pending[1:]
		}
	}
}
