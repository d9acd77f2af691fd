package events

import "sync"

type Handler func(channel string, payload any)

// Bus delivers payloads synchronously to the subscribers of a named
// channel, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscription
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers fn on channel and returns a func that removes it.
func (b *Bus) Subscribe(channel string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[channel] = append(b.subs[channel], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(channel, id) })
	}
}

func (b *Bus) unsubscribe(channel string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[channel]
	for i, s := range subs {
		if s.id == id {
			b.subs[channel] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) Publish(channel string, payload any) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[channel]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(channel, payload)
	}
}

func (b *Bus) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}
