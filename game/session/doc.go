// Package session provides session management for GeoQuest.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiration
//
// Sessions use 4-character hex IDs generated from cryptographic
// randomness and are looked up case-insensitively. Storage is memory
// only; sessions disappear when the process exits.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "classic", rpgGame, racingGame)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
package session
