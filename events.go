package localizer

import "sync"

// Event names emitted by the Manager.
const (
	// EventLocaleChanged fires after a locale switch committed.
	EventLocaleChanged = "locale.changed"

	// EventLocalesChanged fires together with EventLocaleChanged on
	// every committed switch.
	EventLocalesChanged = "locales.changed"
)

// Event describes a change in the manager's locale state.
type Event struct {
	Name    string   // one of the Event* constants
	Locale  string   // active locale after the change
	Locales []string // available locales after the change
}

// subscribers is a minimal observer registry, decoupled from the
// manager's mutation logic.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func newSubscribers() *subscribers {
	return &subscribers{subs: make(map[int]func(Event))}
}

func (s *subscribers) add(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *subscribers) publish(e Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may unsubscribe
	// or query the manager without deadlocking.
	for _, fn := range fns {
		fn(e)
	}
}

// Subscribe registers a callback invoked synchronously for every
// emitted event. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(Event)) func() {
	return m.subscribers.add(fn)
}
