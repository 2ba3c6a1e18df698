package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client

	hub.BroadcastAlert("s1", "Time for a Break!", "You have been sitting too long.")

	select {
	case raw := <-client.send:
		var msg struct {
			Type    string `json:"type"`
			Payload struct {
				SessionID string `json:"session_id"`
				Title     string `json:"title"`
			} `json:"payload"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("broadcast is not valid JSON: %v", err)
		}
		if msg.Type != "alert" {
			t.Errorf("type = %q, want alert", msg.Type)
		}
		if msg.Payload.SessionID != "s1" || msg.Payload.Title != "Time for a Break!" {
			t.Errorf("unexpected payload: %s", raw)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	hub.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	// Stop closes every client's send channel.
	if _, open := <-client.send; open {
		t.Error("client send channel still open after Stop")
	}
}

func TestHubStopWithoutClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	hub.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
}
