package pubsub

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func recvEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestPublishReachesSubscriber(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "topology")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	payload := TopologyEvent{Name: "demo", Nodes: 3, Edges: 2}
	if err := b.Publish("topology", "reloaded", payload); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	ev := recvEvent(t, sub)
	if ev.Topic != "topology" || ev.Type != "reloaded" {
		t.Errorf("got topic=%q type=%q", ev.Topic, ev.Type)
	}
	if ev.Version != 1 {
		t.Errorf("Version = %d, want 1", ev.Version)
	}

	var got TopologyEvent
	if err := json.Unmarshal(ev.Data, &got); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %+v, want %+v", got, payload)
	}
}

func TestReplayLastEventOnly(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	b.Configure("topology", TopicOptions{Buffer: 5})

	for i := 0; i < 3; i++ {
		if err := b.Publish("topology", "reloaded", TopologyEvent{Nodes: i}); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	sub, err := b.Subscribe(context.Background(), "topology")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	ev := recvEvent(t, sub)
	if ev.Version != 3 {
		t.Errorf("replayed version %d, want the most recent (3)", ev.Version)
	}

	select {
	case extra := <-sub.Events():
		t.Errorf("unexpected second replay event: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReplayAll(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	b.Configure("log", TopicOptions{Buffer: 2, ReplayAll: true})

	for i := 0; i < 3; i++ {
		if err := b.Publish("log", "line", map[string]int{"n": i}); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	sub, err := b.Subscribe(context.Background(), "log")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// Buffer holds 2, so versions 2 and 3 replay in order.
	first := recvEvent(t, sub)
	second := recvEvent(t, sub)
	if first.Version != 2 || second.Version != 3 {
		t.Errorf("replayed versions %d, %d, want 2, 3", first.Version, second.Version)
	}
}

func TestUnbufferedTopicHasNoReplay(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	if err := b.Publish("topology", "reloaded", TopologyEvent{}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	sub, err := b.Subscribe(context.Background(), "topology")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	select {
	case ev := <-sub.Events():
		t.Errorf("unexpected replay on unbuffered topic: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestContextCancelClosesSubscription(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := b.Subscribe(ctx, "topology")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("expected channel close, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}

func TestCloseStopsPublishing(t *testing.T) {
	b := NewBroker()
	sub, err := b.Subscribe(context.Background(), "topology")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	b.Close()

	if _, ok := <-sub.Events(); ok {
		t.Error("expected closed subscription channel")
	}
	if err := b.Publish("topology", "reloaded", TopologyEvent{}); err == nil {
		t.Error("expected Publish after Close to fail")
	}
	if _, err := b.Subscribe(context.Background(), "topology"); err == nil {
		t.Error("expected Subscribe after Close to fail")
	}
}

func TestWriteSSEFormat(t *testing.T) {
	var buf strings.Builder
	ev := Event{Topic: "topology", Type: "reloaded", Data: json.RawMessage(`{"name":"demo"}`), Version: 7}
	if err := WriteSSE(&buf, ev); err != nil {
		t.Fatalf("WriteSSE failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "event: reloaded\n") {
		t.Errorf("missing event line: %q", out)
	}
	if !strings.Contains(out, "data: {") {
		t.Errorf("missing data line: %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("event not terminated by blank line: %q", out)
	}

	var decoded Event
	dataLine := strings.TrimPrefix(strings.Split(out, "\n")[1], "data: ")
	if err := json.Unmarshal([]byte(dataLine), &decoded); err != nil {
		t.Fatalf("data line is not valid JSON: %v", err)
	}
	if decoded.Version != 7 {
		t.Errorf("decoded version %d, want 7", decoded.Version)
	}
}
