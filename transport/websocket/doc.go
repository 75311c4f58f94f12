// Package websocket provides WebSocket transport for GeoQuest.
//
// The websocket package implements:
//   - Real-time session snapshot broadcasting
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages
// all WebSocket connections. Each client connection is handled by a
// dedicated goroutine pair for reading and writing.
//
// Message Protocol:
//
// Messages are JSON-encoded. After every mutating operation the REST
// layer pushes a full session snapshot (both engine statuses) to all
// clients watching that session:
//
//	{"session_id": "abc1", "event": "session_update", "session": {...}}
//
// Clients connect with the session ID as a query parameter
// (/ws?session=abc1). Incoming client messages are ignored; the read
// loop exists only to detect disconnects and answer pings.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler
//	hub.ServeWS(w, r, sessionID)
package websocket
