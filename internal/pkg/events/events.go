// Package events provides in-process, typed publish/subscribe topics.
//
// Each event kind gets its own Topic[T]; subscribers register explicitly and
// receive the payload by value, so a listener can never mutate the aggregate
// that triggered the event. Publish delivers synchronously in subscription
// order, which keeps lifecycle transitions observable as discrete, ordered
// events.
package events

import "sync"

type Subscriber[T any] func(event T)

type Topic[T any] struct {
	mu   sync.RWMutex
	subs []Subscriber[T]
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{}
}

func (t *Topic[T]) Subscribe(fn Subscriber[T]) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}

func (t *Topic[T]) Publish(event T) {
	t.mu.RLock()
	subs := make([]Subscriber[T], len(t.subs))
	copy(subs, t.subs)
	t.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}

func (t *Topic[T]) SubscriberCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}
