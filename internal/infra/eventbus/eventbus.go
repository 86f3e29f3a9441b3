// Package eventbus is an in-memory publish/subscribe bus. The chat
// orchestrator publishes a topic per completed turn and the activity
// recorder consumes it, which keeps activity writes off the request path.
//
//   - one buffered channel per subscriber (buffer = 100)
//   - Publish never blocks: a full subscriber buffer drops the event
//   - no persistence; events are fire-and-forget
package eventbus

import "sync"

// Event is a single published message.
type Event struct {
	Topic   string
	Payload any
}

// EventBus is the publish/subscribe contract, split out so consumers can
// be tested against a stub.
type EventBus interface {
	Publish(topic string, payload any)
	Subscribe(topic string) <-chan Event
}

const defaultBufferSize = 100

// Bus is the in-memory EventBus implementation.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]chan Event)}
}

// Subscribe registers a subscriber for topic and returns its channel.
// The caller owns the consumption loop; an unconsumed channel eventually
// drops events, it never blocks publishers.
func (b *Bus) Subscribe(topic string) <-chan Event {
	ch := make(chan Event, defaultBufferSize)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers an Event to every subscriber of topic, dropping it for
// any subscriber whose buffer is full.
func (b *Bus) Publish(topic string, payload any) {
	evt := Event{Topic: topic, Payload: payload}
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
			// subscriber lagging — drop
		}
	}
}
