package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/mizuojisan/geoquest/game/geo"
	"github.com/mizuojisan/geoquest/game/service"
	"github.com/mizuojisan/geoquest/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/mode", s.handleSetMode).Methods("POST", "PUT")

	// Position updates drive whichever engine the session mode selects
	api.HandleFunc("/sessions/{id}/position", s.handleUpdatePosition).Methods("POST")

	// RPG operations
	api.HandleFunc("/sessions/{id}/rpg/battle", s.handleBattleAction).Methods("POST")
	api.HandleFunc("/sessions/{id}/rpg/collect", s.handleCollectItem).Methods("POST")
	api.HandleFunc("/sessions/{id}/rpg/poi/{index}", s.handleVisitPOI).Methods("POST")
	api.HandleFunc("/sessions/{id}/rpg/status", s.handleRPGStatus).Methods("GET")

	// Racing operations
	api.HandleFunc("/sessions/{id}/racing/race/start", s.handleStartRace).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/race/finish", s.handleFinishRace).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/course/select", s.handleSelectCourse).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/course/generate", s.handleGenerateCourse).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/checkpoints", s.handleSetCheckpoint).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/shop", s.handleVehicleShop).Methods("GET")
	api.HandleFunc("/sessions/{id}/racing/vehicles/buy", s.handleBuyVehicle).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/vehicles/change", s.handleChangeVehicle).Methods("POST")
	api.HandleFunc("/sessions/{id}/racing/leaderboard", s.handleLeaderboard).Methods("GET")
	api.HandleFunc("/sessions/{id}/racing/status", s.handleRacingStatus).Methods("GET")

	// Content packs
	api.HandleFunc("/packs", s.handleListPacks).Methods("GET")
	api.HandleFunc("/packs", s.handleCreatePack).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// broadcastSession pushes the session snapshot to its WebSocket
// watchers after a mutating operation.
func (s *Server) broadcastSession(ctx context.Context, sessionID string) {
	if s.hub == nil {
		return
	}
	info, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, info)
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pack string `json:"pack,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := s.service.CreateSession(r.Context(), req.Pack)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Str("session", session.ID).Str("pack", session.Pack).Msg("session created")
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else { // "accessed"
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Mode string `json:"mode"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.SetMode(r.Context(), sessionID, service.Mode(req.Mode))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Info().Str("session", sessionID).Str("mode", req.Mode).Msg("mode switched")
	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

// Position Handler

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var pos geo.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.UpdatePosition(r.Context(), sessionID, pos)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	// Compact server log for observability
	switch {
	case result.RPG != nil:
		log.Info().
			Str("session", sessionID).
			Float64("lat", pos.Lat).
			Float64("lng", pos.Lng).
			Int("exp", result.RPG.ExpGain).
			Bool("encounter", result.RPG.Encounter != nil).
			Msg("position update (rpg)")
	case result.Racing != nil:
		log.Info().
			Str("session", sessionID).
			Float64("lat", pos.Lat).
			Float64("lng", pos.Lng).
			Int("remaining", result.Racing.CheckpointsRemaining).
			Msg("position update (racing)")
	default:
		log.Debug().Str("session", sessionID).Msg("position update")
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

// RPG Handlers

func (s *Server) handleBattleAction(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Action     string `json:"action"`
		SkillIndex int    `json:"skillIndex,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.BattleAction(r.Context(), sessionID, req.Action, req.SkillIndex)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCollectItem(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.CollectItem(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleVisitPOI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid POI index")
		return
	}

	result, svcErr := s.service.VisitPOI(r.Context(), sessionID, index)
	if svcErr != nil {
		respondError(w, http.StatusNotFound, svcErr.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRPGStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	status, err := s.service.RPGStatus(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// Racing Handlers

func (s *Server) handleStartRace(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Course int `json:"course"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := s.service.StartRace(r.Context(), sessionID, req.Course)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	log.Info().Str("session", sessionID).Int("course", req.Course).Msg("race start")
	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleFinishRace(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.FinishRace(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSelectCourse(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Index int `json:"index"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.SelectCourse(r.Context(), sessionID, req.Index)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateCourse(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Lat    float64 `json:"lat"`
		Lng    float64 `json:"lng"`
		Radius float64 `json:"radius,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	center := geo.Position{Lat: req.Lat, Lng: req.Lng}
	result, err := s.service.GenerateCourse(r.Context(), sessionID, center, req.Radius)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSetCheckpoint(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var pos geo.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.SetCheckpoint(r.Context(), sessionID, pos)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleVehicleShop(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	shop, err := s.service.VehicleShop(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vehicles": shop,
	})
}

func (s *Server) handleBuyVehicle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Index int `json:"index"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.BuyVehicle(r.Context(), sessionID, req.Index)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleChangeVehicle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.ChangeVehicle(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcastSession(r.Context(), sessionID)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	board, err := s.service.Leaderboard(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleRacingStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	status, err := s.service.RacingStatus(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// Content Pack Handlers

func (s *Server) handleListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := s.service.ListPacks(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, packs)
}

func (s *Server) handleCreatePack(w http.ResponseWriter, r *http.Request) {
	var doc struct {
		Name string `json:"name"`
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Name == "" {
		respondError(w, http.StatusBadRequest, "Pack name is required")
		return
	}

	if err := s.service.SavePack(r.Context(), doc.Name, raw); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save pack: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Content pack saved successfully",
		"pack_id": doc.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	if _, err := s.service.GetSession(context.Background(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
