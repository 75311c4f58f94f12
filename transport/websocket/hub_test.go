package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mizuojisan/geoquest/game/service"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "ab12",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.sessions["ab12"]; !exists {
		t.Error("Session was not created")
	}
	if !hub.sessions["ab12"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["ab12"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["ab12"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "ab12",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["ab12"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "cd34"

	client1 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	client2 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	sessionID := "ef56"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	hub.register <- client

	info := &service.SessionInfo{
		ID:   sessionID,
		Pack: "default",
		Mode: service.ModeRPG,
	}
	hub.BroadcastToSession(sessionID, info)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != "session_update" {
			t.Errorf("Expected event 'session_update', got %s", message.Event)
		}
		if message.Session == nil || message.Session.Pack != "default" {
			t.Errorf("Session snapshot not transmitted: %+v", message.Session)
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	sessionID := "gh78"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	hub.register <- client

	hub.BroadcastEvent(sessionID, "race_finished", "new record")

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != "race_finished" {
			t.Errorf("Expected event 'race_finished', got %s", message.Event)
		}
		if message.Data != "new record" {
			t.Errorf("Expected data 'new record', got %v", message.Data)
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastIgnoresOtherSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		hub:       hub,
		sessionID: "ij90",
		send:      make(chan []byte, 256),
	}
	hub.register <- client

	hub.BroadcastEvent("kl12", "session_update", nil)

	select {
	case data := <-client.send:
		t.Errorf("Client received a message for another session: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}
