// Package service provides the business logic layer for GeoQuest.
//
// The service package implements:
//   - Multi-session game management
//   - Mode routing between the two engines
//   - Content pack selection at session creation
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ContentManager loads named content packs and builds fresh
// engine pairs from them.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/
// MCP) and the game engines. Every session owns one rpg.Game and one
// racing.Game; a mode flag decides which engine position updates
// drive. Both engines exist for the whole session lifetime, so
// switching modes never loses progress.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	contentMgr, _ := config.NewManager("packs")
//	gameService := service.NewGameService(sessionMgr, contentMgr)
//
//	info, err := gameService.CreateSession(ctx, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.UpdatePosition(ctx, info.ID, pos)
//
// Error Convention:
//
// Go errors from the service mean infrastructure problems: unknown
// session, unknown pack, unknown mode. Engine-level refusals (no
// battle open, cannot afford a vehicle) ride inside the result records
// unchanged, so transports can forward them verbatim.
package service
