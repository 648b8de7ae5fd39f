// Package pubsub distributes server events to dashboard clients over
// Server-Sent Events. Topics buffer recent events so a client connecting
// after a topology reload still sees the current state.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vatne/archmap/pkg/logging"
)

// Event is one published message.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"`
}

// TopicOptions controls per-topic buffering.
type TopicOptions struct {
	Buffer    int  // events retained for replay (0 = none)
	ReplayAll bool // replay the whole buffer instead of only the last event
}

// TopologyEvent is the payload published on the "topology" topic after a
// reload attempt.
type TopologyEvent struct {
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
	Error string `json:"error,omitempty"`
}

// Subscription is one client's feed for a topic.
type Subscription struct {
	topic  string
	events chan Event
	broker *Broker
	once   sync.Once
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string { return s.topic }

// Events returns the receive channel. It is closed when the subscription
// or the broker closes.
func (s *Subscription) Events() <-chan Event { return s.events }

// Close detaches the subscription from the broker.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s)
	})
}

// Broker fans events out to subscribers, keeping a bounded replay buffer
// per topic.
type Broker struct {
	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{}
	buffers map[string][]Event
	options map[string]TopicOptions
	version map[string]int
	closed  bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subs:    make(map[string]map[*Subscription]struct{}),
		buffers: make(map[string][]Event),
		options: make(map[string]TopicOptions),
		version: make(map[string]int),
	}
}

// Configure sets buffering options for a topic. Call before publishing.
func (b *Broker) Configure(topic string, opts TopicOptions) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.options[topic] = opts
}

// Subscribe attaches a new subscriber and replays buffered events per the
// topic's options. Cancelling the context closes the subscription.
func (b *Broker) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, fmt.Errorf("broker is closed")
	}

	sub := &Subscription{
		topic:  topic,
		events: make(chan Event, 64),
		broker: b,
	}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*Subscription]struct{})
	}
	b.subs[topic][sub] = struct{}{}

	replay := append([]Event(nil), b.buffers[topic]...)
	if !b.options[topic].ReplayAll && len(replay) > 1 {
		replay = replay[len(replay)-1:]
	}
	b.mu.Unlock()

	for _, ev := range replay {
		select {
		case sub.events <- ev:
		default:
			logging.Warn("dropping replay event, subscriber channel full", "topic", topic)
		}
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub, nil
}

// Publish sends an event to every subscriber of the topic. Slow subscribers
// drop events rather than blocking the publisher.
func (b *Broker) Publish(topic, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling event payload: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("broker is closed")
	}

	b.version[topic]++
	ev := Event{
		Topic:   topic,
		Type:    eventType,
		Data:    data,
		Version: b.version[topic],
	}

	if n := b.options[topic].Buffer; n > 0 {
		buf := append(b.buffers[topic], ev)
		if len(buf) > n {
			buf = buf[len(buf)-n:]
		}
		b.buffers[topic] = buf
	}

	for sub := range b.subs[topic] {
		select {
		case sub.events <- ev:
		default:
			logging.Warn("dropping event, subscriber channel full", "topic", topic)
		}
	}
	return nil
}

// Close shuts the broker down and closes every subscription channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subs {
		for sub := range subs {
			close(sub.events)
		}
	}
	b.subs = make(map[string]map[*Subscription]struct{})
}

func (b *Broker) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if subs := b.subs[sub.topic]; subs != nil {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.events)
		}
		if len(subs) == 0 {
			delete(b.subs, sub.topic)
		}
	}
}
