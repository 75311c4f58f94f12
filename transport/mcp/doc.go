// Package mcp provides the Model Context Protocol server for GeoQuest.
//
// The mcp package implements:
//   - MCP tool definitions for both game engines
//   - A thin proxy that forwards tool calls to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session, get_session, list_sessions: Session management
//   - set_mode: Switch between rpg and racing modes
//   - update_position: Send a map position to the active engine
//   - battle_action, collect_item, visit_poi, rpg_status: RPG play
//   - start_race, finish_race, select_course, generate_course,
//     set_checkpoint: Race control
//   - vehicle_shop, buy_vehicle, change_vehicle: Garage
//   - leaderboard, racing_status: Racing results
//   - list_packs: Available content packs
//   - game_instructions: Full rules for both modes
//
// Architecture:
//
// The Client holds no game state. Every tool call becomes an HTTP
// request against the REST API, and responses are formatted as plain
// text for the agent. This keeps the MCP surface identical to what a
// human-facing client sees.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
