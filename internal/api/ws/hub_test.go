package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func newTestClient(id string, buf int) *Client {
	return &Client{
		ID:   id,
		Send: make(chan Event, buf),
	}
}

// drainEvents empties a client's send buffer and returns what was queued
func drainEvents(c *Client) []Event {
	var events []Event
	for {
		select {
		case ev, ok := <-c.Send:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestHub_RegisterBroadcastsPresence(t *testing.T) {
	hub := newTestHub()

	a := newTestClient("conn-a", 16)
	hub.Register(a)

	events := drainEvents(a)
	require.Len(t, events, 1, "new member should see its own UserConnected")
	assert.Equal(t, EventUserConnected, events[0].Name)
	assert.Equal(t, PresencePayload{ConnectionID: "conn-a"}, events[0].Data)

	b := newTestClient("conn-b", 16)
	hub.Register(b)

	aEvents := drainEvents(a)
	bEvents := drainEvents(b)
	require.Len(t, aEvents, 1)
	require.Len(t, bEvents, 1)
	assert.Equal(t, PresencePayload{ConnectionID: "conn-b"}, aEvents[0].Data)
	assert.Equal(t, PresencePayload{ConnectionID: "conn-b"}, bEvents[0].Data)
}

func TestHub_PublishFanOut(t *testing.T) {
	hub := newTestHub()

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = newTestClient(fmt.Sprintf("conn-%d", i), 16)
		hub.Register(clients[i])
	}
	for _, c := range clients {
		drainEvents(c)
	}

	hub.Publish(NewChatEvent("ops", "hello"))

	for _, c := range clients {
		events := drainEvents(c)
		require.Len(t, events, 1, "every connection gets exactly one copy")
		assert.Equal(t, EventMessage, events[0].Name)
		assert.Equal(t, ChatPayload{User: "ops", Message: "hello"}, events[0].Data)
	}
}

func TestHub_PerProducerOrder(t *testing.T) {
	hub := newTestHub()

	a := newTestClient("conn-a", 16)
	b := newTestClient("conn-b", 16)
	hub.Register(a)
	hub.Register(b)
	drainEvents(a)
	drainEvents(b)

	hub.Publish(NewChatEvent("ops", "first"))
	hub.Publish(NewChatEvent("ops", "second"))
	hub.Publish(NewChatEvent("ops", "third"))

	for _, c := range []*Client{a, b} {
		events := drainEvents(c)
		require.Len(t, events, 3)
		assert.Equal(t, "first", events[0].Data.(ChatPayload).Message)
		assert.Equal(t, "second", events[1].Data.(ChatPayload).Message)
		assert.Equal(t, "third", events[2].Data.(ChatPayload).Message)
	}
}

func TestHub_DisconnectIsolation(t *testing.T) {
	hub := newTestHub()

	a := newTestClient("conn-a", 16)
	b := newTestClient("conn-b", 16)
	hub.Register(a)
	hub.Register(b)
	drainEvents(a)
	drainEvents(b)

	hub.Unregister(a)
	hub.Publish(NewChatEvent("ops", "after disconnect"))

	require.Equal(t, 1, hub.ClientCount())

	bEvents := drainEvents(b)
	require.Len(t, bEvents, 2)
	assert.Equal(t, EventUserDisconnected, bEvents[0].Name)
	assert.Equal(t, PresencePayload{ConnectionID: "conn-a"}, bEvents[0].Data)
	assert.Equal(t, EventMessage, bEvents[1].Name)

	// a's channel is closed and empty; nothing was delivered after removal
	_, ok := <-a.Send
	assert.False(t, ok)
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub()

	a := newTestClient("conn-a", 16)
	b := newTestClient("conn-b", 16)
	hub.Register(a)
	hub.Register(b)
	drainEvents(b)

	assert.NotPanics(t, func() {
		hub.Unregister(a)
		hub.Unregister(a)
	})

	bEvents := drainEvents(b)
	disconnects := 0
	for _, ev := range bEvents {
		if ev.Name == EventUserDisconnected {
			disconnects++
		}
	}
	assert.Equal(t, 1, disconnects, "second unregister must not emit a duplicate presence event")
}

func TestHub_UnregisterUnknownClientIsNoOp(t *testing.T) {
	hub := newTestHub()

	assert.NotPanics(t, func() {
		hub.Unregister(newTestClient("never-registered", 1))
	})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_SlowSubscriberDoesNotBlockOthers(t *testing.T) {
	hub := newTestHub()

	slow := newTestClient("conn-slow", 1)
	fast := newTestClient("conn-fast", 16)
	hub.Register(slow)
	hub.Register(fast)
	drainEvents(fast)
	// slow's buffer is left full with its presence backlog

	done := make(chan struct{})
	go func() {
		hub.Publish(NewChatEvent("ops", "ping"))
		close(done)
	}()

	<-done

	fastEvents := drainEvents(fast)
	require.Len(t, fastEvents, 1)
	assert.Equal(t, EventMessage, fastEvents[0].Name)
}

func TestHub_ConcurrentProducersKeepTheirOrder(t *testing.T) {
	hub := newTestHub()

	c := newTestClient("conn-a", 256)
	hub.Register(c)
	drainEvents(c)

	const perProducer = 20
	var wg sync.WaitGroup
	for _, producer := range []string{"alpha", "beta"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				hub.Publish(NewChatEvent(name, fmt.Sprintf("%d", i)))
			}
		}(producer)
	}
	wg.Wait()

	events := drainEvents(c)
	require.Len(t, events, 2*perProducer)

	// Each producer's events must appear in its publish order
	seen := map[string]int{}
	for _, ev := range events {
		chat := ev.Data.(ChatPayload)
		assert.Equal(t, fmt.Sprintf("%d", seen[chat.User]), chat.Message)
		seen[chat.User]++
	}
	assert.Equal(t, perProducer, seen["alpha"])
	assert.Equal(t, perProducer, seen["beta"])
}
