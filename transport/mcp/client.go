package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mizuojisan/geoquest/game/racing"
	"github.com/mizuojisan/geoquest/game/rpg"
	"github.com/mizuojisan/geoquest/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"GeoQuest",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`GeoQuest - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Two game modes share your map position. In RPG mode, travel earns
experience, triggers random battles, and reveals points of interest.
In racing mode, driving through checkpoints completes laps against
your best times.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions: Session management
- set_mode: Switch between "rpg" and "racing" modes
- update_position: Send a lat/lng; the active mode reacts
- battle_action: Fight (attack/skill/item/run) in an open battle
- collect_item / visit_poi / rpg_status: RPG exploration
- start_race / finish_race / generate_course: Race control
- set_checkpoint / select_course: Course building
- vehicle_shop / buy_vehicle / change_vehicle: Garage
- leaderboard / racing_status: Racing results
- list_packs: Available content packs
- game_instructions: Full rules for both modes`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionProp := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional content pack selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack": map[string]interface{}{
					"type":        "string",
					"description": "Name of the content pack to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_mode",
		Description: "Switch a session between rpg and racing modes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"rpg", "racing"},
					"description": "Game mode to activate",
				},
			},
			Required: []string{"session_id", "mode"},
		},
	}, c.handleSetMode)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "update_position",
		Description: "Send a map position; the active mode reacts (RPG travel or racing checkpoint check)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"lat": map[string]interface{}{
					"type":        "number",
					"description": "Latitude in degrees",
				},
				"lng": map[string]interface{}{
					"type":        "number",
					"description": "Longitude in degrees",
				},
			},
			Required: []string{"session_id", "lat", "lng"},
		},
	}, c.handleUpdatePosition)

	// RPG tools
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "battle_action",
		Description: "Take an action in the open battle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"attack", "skill", "item", "run"},
					"description": "Battle action to take",
				},
				"skill_index": map[string]interface{}{
					"type":        "integer",
					"description": "Index into the skill list when action is skill",
				},
			},
			Required: []string{"session_id", "action"},
		},
	}, c.handleBattleAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "collect_item",
		Description: "Pick up a random item at the current location",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleCollectItem)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "visit_poi",
		Description: "Visit a nearby point of interest by index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Index into the nearby POI list",
				},
			},
			Required: []string{"session_id", "index"},
		},
	}, c.handleVisitPOI)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rpg_status",
		Description: "Get the RPG character sheet (stats, skills, quests, inventory)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleRPGStatus)

	// Racing tools
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_race",
		Description: "Start a race on a course; while racing, this stops and settles the race instead",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"course": map[string]interface{}{
					"type":        "integer",
					"description": "Course index (defaults to 0)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartRace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "finish_race",
		Description: "Finish the current race and settle rewards",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleFinishRace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_course",
		Description: "Select a course by index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Course index",
				},
			},
			Required: []string{"session_id", "index"},
		},
	}, c.handleSelectCourse)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "generate_course",
		Description: "Generate a random checkpoint course around a map position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"lat": map[string]interface{}{
					"type":        "number",
					"description": "Center latitude",
				},
				"lng": map[string]interface{}{
					"type":        "number",
					"description": "Center longitude",
				},
				"radius": map[string]interface{}{
					"type":        "number",
					"description": "Course radius in km (defaults to 1)",
				},
			},
			Required: []string{"session_id", "lat", "lng"},
		},
	}, c.handleGenerateCourse)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_checkpoint",
		Description: "Place a single checkpoint at a map position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"lat": map[string]interface{}{
					"type":        "number",
					"description": "Checkpoint latitude",
				},
				"lng": map[string]interface{}{
					"type":        "number",
					"description": "Checkpoint longitude",
				},
			},
			Required: []string{"session_id", "lat", "lng"},
		},
	}, c.handleSetCheckpoint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "vehicle_shop",
		Description: "List vehicles with prices and affordability",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleVehicleShop)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "buy_vehicle",
		Description: "Buy a vehicle from the shop by index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Vehicle index from the shop listing",
				},
			},
			Required: []string{"session_id", "index"},
		},
	}, c.handleBuyVehicle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "change_vehicle",
		Description: "Switch to the next owned vehicle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleChangeVehicle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Get the per-course best-times leaderboard",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "racing_status",
		Description: "Get the racing profile (money, garage, race state, history)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleRacingStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List available content packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPacks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	pack, _ := args["pack"].(string)

	body := map[string]string{}
	if pack != "" {
		body["pack"] = pack
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPack: %s\nMode: %s\n", session.ID, session.Pack, session.Mode)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Pack: %s, Mode: %s, Created: %s)\n",
			s.ID, s.Pack, s.Mode, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleSetMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	mode, _ := args["mode"].(string)

	var result service.ModeResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/mode", sessionID), map[string]string{"mode": mode}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleUpdatePosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	lat, _ := args["lat"].(float64)
	lng, _ := args["lng"].(float64)

	body := map[string]float64{"lat": lat, "lng": lng}

	var result service.PositionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/position", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPositionResult(&result)), nil
}

func (c *Client) handleBattleAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	action, _ := args["action"].(string)
	skillIndex := 0
	if idx, ok := args["skill_index"].(float64); ok {
		skillIndex = int(idx)
	}

	body := map[string]interface{}{
		"action":     action,
		"skillIndex": skillIndex,
	}

	var result rpg.BattleActionResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rpg/battle", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBattleResult(&result)), nil
}

func (c *Client) handleCollectItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result rpg.CollectResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rpg/collect", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleVisitPOI(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	index := 0
	if idx, ok := args["index"].(float64); ok {
		index = int(idx)
	}

	var result rpg.VisitResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rpg/poi/%d", sessionID, index), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Error != "" {
		return mcp.NewToolResultText(fmt.Sprintf("Cannot visit: %s", result.Error)), nil
	}
	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleRPGStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var status rpg.Status
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/rpg/status", sessionID), nil, &status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRPGStatus(&status)), nil
}

func (c *Client) handleStartRace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	course := 0
	if idx, ok := args["course"].(float64); ok {
		course = int(idx)
	}

	var result racing.StartResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/race/start", sessionID),
		map[string]int{"course": course}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Finished != nil {
		return mcp.NewToolResultText(formatFinishResult(result.Finished)), nil
	}
	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleFinishRace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result racing.FinishResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/race/finish", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatFinishResult(&result)), nil
}

func (c *Client) handleSelectCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	index := 0
	if idx, ok := args["index"].(float64); ok {
		index = int(idx)
	}

	var result racing.SelectResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/course/select", sessionID),
		map[string]int{"index": index}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Error != "" {
		return mcp.NewToolResultText(fmt.Sprintf("Cannot select: %s", result.Error)), nil
	}
	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleGenerateCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	lat, _ := args["lat"].(float64)
	lng, _ := args["lng"].(float64)
	radius, _ := args["radius"].(float64)

	body := map[string]float64{"lat": lat, "lng": lng}
	if radius > 0 {
		body["radius"] = radius
	}

	var result racing.GenerateResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/course/generate", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := result.Message + "\n"
	for _, cp := range result.Checkpoints {
		text += fmt.Sprintf("  #%d (%.5f, %.5f)\n", cp.ID, cp.Position.Lat, cp.Position.Lng)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleSetCheckpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	lat, _ := args["lat"].(float64)
	lng, _ := args["lng"].(float64)

	body := map[string]float64{"lat": lat, "lng": lng}

	var result racing.SetCheckpointResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/checkpoints", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s (total: %d)", result.Message, result.TotalCheckpoints)), nil
}

func (c *Client) handleVehicleShop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Vehicles []racing.ShopEntry `json:"vehicles"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/racing/shop", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Vehicle Shop:\n\n"
	for _, v := range response.Vehicles {
		tag := ""
		switch {
		case v.Owned:
			tag = " [owned]"
		case v.CanBuy:
			tag = " [affordable]"
		}
		result += fmt.Sprintf("%d. %s - $%d (top speed %d km/h)%s\n",
			v.Index, v.Name, v.Price, v.MaxSpeed, tag)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBuyVehicle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	index := 0
	if idx, ok := args["index"].(float64); ok {
		index = int(idx)
	}

	var result racing.BuyResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/vehicles/buy", sessionID),
		map[string]int{"index": index}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Error != "" {
		return mcp.NewToolResultText(fmt.Sprintf("Cannot buy: %s", result.Error)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (remaining money: $%d)", result.Message, result.RemainingMoney)), nil
}

func (c *Client) handleChangeVehicle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result racing.ChangeVehicleResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/racing/vehicles/change", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result.Message), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var board map[string][]racing.LeaderboardEntry
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/racing/leaderboard", sessionID), nil, &board)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(board) == 0 {
		return mcp.NewToolResultText("No races completed yet."), nil
	}

	var b strings.Builder
	b.WriteString("Leaderboard:\n")
	for course, entries := range board {
		b.WriteString(fmt.Sprintf("\n%s:\n", course))
		for i, e := range entries {
			b.WriteString(fmt.Sprintf("  %d. %s - %s\n", i+1, racing.FormatTime(e.TimeMs), e.Vehicle))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleRacingStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var status racing.Status
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/racing/status", sessionID), nil, &status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRacingStatus(&status)), nil
}

func (c *Client) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var packs []service.PackInfo
	err := c.apiCall("GET", "/api/packs", nil, &packs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Content Packs:\n\n"
	for _, pack := range packs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Enemies: %d, Vehicles: %d, Courses: %d\n\n",
			pack.Name, pack.PackID, pack.Description, pack.Enemies, pack.Vehicles, pack.Courses)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `GeoQuest - Complete Instructions

Two game engines share one map position. A session is always in one
mode; update_position drives whichever engine is active. Use set_mode
to switch between "rpg" and "racing".

RPG MODE:
• Travel distance earns experience: 100 EXP per kilometer
• Each move has a 20% chance of a random enemy encounter
• Battles are turn-based: attack, skill, item, or run
• Running has a 70% success chance; failing lets the enemy strike
• Level-ups fully restore HP and MP and may teach a skill
• Defeat is not fatal: you keep 1 HP and lose 10% of your gold
• Points of interest appear near your position; visit them by index
  for bonuses (rest, treasure, experience, gold)
• Quests complete automatically: defeat the right enemies or collect
  enough items and the reward pays out

RACING MODE:
• Place checkpoints manually (set_checkpoint) or synthesize a ring of
  4-7 around a position (generate_course)
• start_race begins timing; drive within 50 meters of each checkpoint
  in any order to register it
• Hitting every checkpoint completes a lap; a race is 3 laps
• Beating your best time on a course pays 1.5x the course reward
• Prize money buys faster vehicles in the shop
• While racing, start_race acts as a stop button and settles the race

SESSION MANAGEMENT:
• Multiple sessions can run simultaneously, each with its own pair of
  engines and a 4-character ID
• Content packs swap out enemies, items, quests, vehicles and courses;
  pass a pack name to create_session

All engine failures (no battle open, not racing, cannot afford a
vehicle) come back as plain messages, never as hard errors.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatters

func formatSessionInfo(s *service.SessionInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Session: %s\nPack: %s\nMode: %s\nCreated: %s\n",
		s.ID, s.Pack, s.Mode, s.CreatedAt.Format(time.RFC3339)))
	if s.RPG != nil {
		b.WriteString("\n")
		b.WriteString(formatRPGStatus(s.RPG))
	}
	if s.Racing != nil {
		b.WriteString("\n")
		b.WriteString(formatRacingStatus(s.Racing))
	}
	return b.String()
}

func formatPositionResult(r *service.PositionResult) string {
	switch {
	case r.RPG != nil:
		var b strings.Builder
		b.WriteString(r.RPG.Message)
		b.WriteString("\n")
		for _, up := range r.RPG.LevelUps {
			b.WriteString(up.Message)
			b.WriteString("\n")
		}
		if r.RPG.Encounter != nil {
			b.WriteString(r.RPG.Encounter.Message)
			b.WriteString("\n")
		}
		return b.String()
	case r.Racing != nil:
		if r.Racing.Finished != nil {
			return formatFinishResult(r.Racing.Finished)
		}
		return r.Racing.Message
	default:
		return "Position updated."
	}
}

func formatBattleResult(r *rpg.BattleActionResult) string {
	if r.Error != "" {
		return fmt.Sprintf("Cannot act: %s", r.Error)
	}

	var b strings.Builder
	for _, line := range r.BattleLog {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if r.BattleResult != nil {
		b.WriteString(r.BattleResult.Message)
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("Player HP: %d | Enemy HP: %d\n", r.PlayerHP, r.EnemyHP))
	}
	return b.String()
}

func formatFinishResult(r *racing.FinishResult) string {
	if r.Error != "" {
		return fmt.Sprintf("Cannot finish: %s", r.Error)
	}

	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Time: %s", r.FormattedTime))
	if r.IsNewRecord {
		b.WriteString(" (new record!)")
	}
	b.WriteString(fmt.Sprintf("\nReward: $%d, EXP +%d\n", r.Reward, r.ExpGain))
	if r.LevelUp != nil {
		b.WriteString(r.LevelUp.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func formatRPGStatus(s *rpg.Status) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s - Level %d (%d/%d EXP)\n", s.Name, s.Level, s.Exp, s.ExpNeeded))
	b.WriteString(fmt.Sprintf("HP %d/%d | MP %d/%d | Gold %d\n", s.HP, s.MaxHP, s.MP, s.MaxMP, s.Gold))
	b.WriteString(fmt.Sprintf("ATK %d | DEF %d | SPD %d\n", s.Stats.Attack, s.Stats.Defense, s.Stats.Speed))
	b.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(s.Skills, ", ")))

	if len(s.Inventory) > 0 {
		names := make([]string, len(s.Inventory))
		for i, item := range s.Inventory {
			names[i] = item.Name
		}
		b.WriteString(fmt.Sprintf("Inventory: %s\n", strings.Join(names, ", ")))
	}

	for _, q := range s.Quests {
		b.WriteString(fmt.Sprintf("Quest: %s (%d/%d)\n", q.Title, q.CurrentCount, q.TargetCount))
	}

	if len(s.NearbyPOIs) > 0 {
		b.WriteString("Nearby:\n")
		for i, poi := range s.NearbyPOIs {
			b.WriteString(fmt.Sprintf("  %d. %s (%s)\n", i, poi.Name, poi.Type))
		}
	}

	if s.InBattle {
		b.WriteString("⚔ In battle!\n")
	}
	return b.String()
}

func formatRacingStatus(s *racing.Status) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s - Level %d (%d EXP) | $%d\n", s.Name, s.Level, s.Experience, s.Money))
	b.WriteString(fmt.Sprintf("Vehicle: %s (top speed %d km/h)\n", s.CurrentVehicle.Name, s.CurrentVehicle.MaxSpeed))

	if s.IsRacing && s.CurrentRace != nil {
		b.WriteString(fmt.Sprintf("Racing on %s at %d km/h\n", s.CurrentRace.Course.Name, s.CurrentSpeed))
	}

	if len(s.BestTimes) > 0 {
		b.WriteString("Best times:\n")
		for course, ms := range s.BestTimes {
			b.WriteString(fmt.Sprintf("  %s: %s\n", course, racing.FormatTime(ms)))
		}
	}

	if len(s.RaceHistory) > 0 {
		b.WriteString(fmt.Sprintf("Races completed: %d\n", len(s.RaceHistory)))
	}
	return b.String()
}
