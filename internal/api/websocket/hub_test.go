package websocket

import (
	"testing"
	"time"
)

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client
	waitForClientCount(t, hub, 1)

	// Fill the buffer so the next broadcast cannot be queued.
	client.send <- []byte("backlog")
	hub.Broadcast([]byte("update"))
	waitForClientCount(t, hub, 0)

	// The client's readPump may still be handling a command that replies
	// after the drop. Sending must be a no-op, never a panic.
	client.Send([]byte("late reply"))
	if client.trySend([]byte("again")) {
		t.Error("trySend must report false after the hub dropped the client")
	}
}

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client
	waitForClientCount(t, hub, 1)

	hub.Broadcast([]byte("state"))
	select {
	case got := <-client.send:
		if string(got) != "state" {
			t.Errorf("got %q, want %q", got, "state")
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}

	hub.unregister <- client
	waitForClientCount(t, hub, 0)
	if _, open := <-client.send; open {
		t.Error("send queue must be closed after unregister")
	}
}
