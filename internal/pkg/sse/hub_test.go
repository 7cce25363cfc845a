package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("alice")
	defer cleanup()

	hub.Publish("alice", Event{UserID: "alice", Event: "message", Data: "hi"})

	select {
	case ev := <-ch:
		assert.Equal(t, "message", ev.Event)
		assert.Equal(t, "hi", ev.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHubPublishIgnoresOtherUsers(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("alice")
	defer cleanup()

	hub.Publish("bob", Event{UserID: "bob", Event: "message", Data: "nope"})

	select {
	case <-ch:
		t.Fatal("alice should not receive bob's event")
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("alice")
	require.Equal(t, 1, hub.SubscriberCount("alice"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("alice"))

	// Publishing after cleanup must not panic.
	hub.Publish("alice", Event{UserID: "alice", Event: "message"})
}

func TestHubMultipleSubscribersSameUser(t *testing.T) {
	hub := NewHub()
	ch1, cleanup1 := hub.Subscribe("alice")
	ch2, cleanup2 := hub.Subscribe("alice")
	defer cleanup1()
	defer cleanup2()

	hub.Publish("alice", Event{UserID: "alice", Event: "message", Data: 1})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, 1, ev.Data)
		default:
			t.Fatal("both tabs should receive the event")
		}
	}
}

func TestHubFullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("alice")
	defer cleanup()

	// More events than the channel buffer; Publish must never block.
	for i := 0; i < 100; i++ {
		hub.Publish("alice", Event{UserID: "alice", Event: "message", Data: i})
	}
}

func TestHubPublishToMany(t *testing.T) {
	hub := NewHub()
	chA, cleanupA := hub.Subscribe("alice")
	chB, cleanupB := hub.Subscribe("bob")
	defer cleanupA()
	defer cleanupB()

	hub.PublishToMany([]string{"alice", "bob"}, Event{Event: "message", Data: "all"})

	evA := <-chA
	evB := <-chB
	assert.Equal(t, "alice", evA.UserID)
	assert.Equal(t, "bob", evB.UserID)
}
