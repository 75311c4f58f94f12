// Package api provides HTTP REST API handlers for GeoQuest.
//
// The api package implements:
//   - RESTful endpoints for both game engines
//   - Session management endpoints
//   - Content pack listing and upload
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional pack)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//   - POST /api/sessions/{id}/mode - Switch between rpg and racing
//
// Position:
//   - POST /api/sessions/{id}/position - Send a lat/lng fix; the
//     session's active engine reacts
//
// RPG:
//   - POST /api/sessions/{id}/rpg/battle - Battle action
//   - POST /api/sessions/{id}/rpg/collect - Collect a random item
//   - POST /api/sessions/{id}/rpg/poi/{index} - Visit a nearby POI
//   - GET /api/sessions/{id}/rpg/status - Character sheet
//
// Racing:
//   - POST /api/sessions/{id}/racing/race/start - Start (or stop) a race
//   - POST /api/sessions/{id}/racing/race/finish - Settle the race
//   - POST /api/sessions/{id}/racing/course/select - Pick a catalog course
//   - POST /api/sessions/{id}/racing/course/generate - Random course ring
//   - POST /api/sessions/{id}/racing/checkpoints - Place one checkpoint
//   - GET /api/sessions/{id}/racing/shop - Vehicle shop listing
//   - POST /api/sessions/{id}/racing/vehicles/buy - Buy by index
//   - POST /api/sessions/{id}/racing/vehicles/change - Next owned vehicle
//   - GET /api/sessions/{id}/racing/leaderboard - Per-course top runs
//   - GET /api/sessions/{id}/racing/status - Racing profile
//
// Content Packs:
//   - GET /api/packs - List available packs
//   - POST /api/packs - Upload a pack document
//
// Error Handling:
//
// Infrastructure errors come back as JSON with appropriate HTTP status
// codes:
//
//	{"error": "session not found"}
//
// Engine-level refusals are 200 responses whose body carries the
// engine's own error field, matching the engine result records.
package api
