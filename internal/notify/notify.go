// Package notify is a small pub/sub bus for user-facing notifications.
// Subscribers register and unregister explicitly, so a remounted view
// never leaks a stale handler.
package notify

import "sync"

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

type Toast struct {
	Title       string
	Description string
	Variant     Variant
}

type Handler func(Toast)

type Bus struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns the function that removes
// it. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Publish delivers the toast to every current subscriber, in
// registration order not guaranteed. Publishing with no subscribers
// is a no-op.
func (b *Bus) Publish(t Toast) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subscribers))
	for _, h := range b.subscribers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(t)
	}
}
