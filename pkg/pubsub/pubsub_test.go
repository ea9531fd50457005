package pubsub

import (
	"testing"
	"time"
)

func TestPublishReachesSubscriber(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("topic")

	ps.Publish("topic", "payload")

	select {
	case got := <-ch:
		if got != "payload" {
			t.Fatalf("received %q, want %q", got, "payload")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
	}
}

func TestPublishOtherTopicNotDelivered(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("topic-a")

	ps.Publish("topic-b", "payload")

	select {
	case got := <-ch:
		t.Fatalf("received %q from an unsubscribed topic", got)
	default:
	}
}

func TestPublishSkipsFullSubscriber(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("topic")

	// The buffer holds one message; further publishes must not block.
	ps.Publish("topic", "first")
	done := make(chan struct{})
	go func() {
		ps.Publish("topic", "second")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	if got := <-ch; got != "first" {
		t.Fatalf("received %q, want the buffered first message", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("topic")
	ps.Unsubscribe("topic", ch)

	ps.Publish("topic", "payload")

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("received payload after unsubscribing")
		}
	default:
	}
}
