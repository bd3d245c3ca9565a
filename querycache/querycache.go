// Package querycache is a query-keyed client cache for the admin SDK.
// Each entry holds the last-known server response for one query and moves
// through an explicit lifecycle: fresh -> stale (on invalidation) ->
// refetching -> fresh. Subscribers are notified on every transition so
// dependent views can re-render without polling.
package querycache

import (
	"strings"
	"sync"
	"time"
)

type State int

const (
	StateFresh State = iota
	StateStale
	StateRefetching
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateRefetching:
		return "refetching"
	default:
		return "unknown"
	}
}

// Key is a structured query identifier, e.g. {"roles", "list"}.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// Event describes one entry transition delivered to subscribers.
type Event struct {
	Key   Key
	State State
}

type entry struct {
	value     interface{}
	state     State
	updatedAt time.Time
}

// Cache is the injectable query-key store. All operations are safe for
// concurrent use; in the single-UI-thread model they simply serialize.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	subs    map[string]map[int]chan Event
	nextSub int
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		subs:    make(map[string]map[int]chan Event),
	}
}

// Get returns the cached value and its state. ok is false when the query
// has never been populated.
func (c *Cache) Get(key Key) (interface{}, State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return nil, StateStale, false
	}
	return e.value, e.state, true
}

// Set stores a server response and marks the entry fresh.
func (c *Cache) Set(key Key, value interface{}) {
	c.mu.Lock()
	c.entries[key.String()] = &entry{value: value, state: StateFresh, updatedAt: time.Now()}
	c.mu.Unlock()
	c.notify(key, StateFresh)
}

// Patch applies fn to the cached value in place, keeping the entry state.
// Used for optimistic updates; a no-op when the query is not cached.
func (c *Cache) Patch(key Key, fn func(interface{}) interface{}) {
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	var state State
	if ok {
		e.value = fn(e.value)
		state = e.state
	}
	c.mu.Unlock()
	if ok {
		c.notify(key, state)
	}
}

// Invalidate marks an entry stale. Unknown keys are ignored: a query that
// was never read has nothing to go stale.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if ok && e.state != StateRefetching {
		e.state = StateStale
	}
	c.mu.Unlock()
	if ok {
		c.notify(key, StateStale)
	}
}

// BeginRefetch moves a stale entry to refetching. Returns false when the
// entry is missing, fresh, or already being refetched, coalescing
// concurrent refetch attempts.
func (c *Cache) BeginRefetch(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || e.state != StateStale {
		return false
	}
	e.state = StateRefetching
	return true
}

// Complete stores the refetched value and marks the entry fresh.
func (c *Cache) Complete(key Key, value interface{}) {
	c.Set(key, value)
}

// Abort returns a refetching entry to stale after a failed refetch.
func (c *Cache) Abort(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key.String()]
	if ok && e.state == StateRefetching {
		e.state = StateStale
	}
	c.mu.Unlock()
	if ok {
		c.notify(key, StateStale)
	}
}

// Subscribe returns a channel receiving entry transitions for key and a
// cancel func. Slow subscribers miss events rather than blocking writers.
func (c *Cache) Subscribe(key Key) (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ks := key.String()
	if c.subs[ks] == nil {
		c.subs[ks] = make(map[int]chan Event)
	}
	id := c.nextSub
	c.nextSub++
	ch := make(chan Event, 8)
	c.subs[ks][id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[ks][id]; ok {
			delete(c.subs[ks], id)
			close(sub)
		}
	}
	return ch, cancel
}

func (c *Cache) notify(key Key, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs[key.String()] {
		select {
		case ch <- Event{Key: key, State: state}:
		default:
		}
	}
}
