package pubsub

import (
	"sync"
)

type PubSub[T any] struct {
	mu   sync.Mutex
	subs map[string][]chan T
}

func NewPubSub[T any]() *PubSub[T] {
	return &PubSub[T]{
		subs: make(map[string][]chan T),
	}
}

func (ps *PubSub[T]) Subscribe(topic string) <-chan T {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan T, 1)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

// Unsubscribe removes the channel from the topic. Websocket handlers
// subscribe per connection, so a closed connection must drop its channel
// to stop the topic list growing for the life of the process.
func (ps *PubSub[T]) Unsubscribe(topic string, ch <-chan T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	subs := ps.subs[topic]
	for i, c := range subs {
		if c == ch {
			ps.subs[topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (ps *PubSub[T]) Publish(topic string, data T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		select {
		case ch <- data:
		default:
			// Slow subscriber already has a pending update; skip it.
		}
	}
}
