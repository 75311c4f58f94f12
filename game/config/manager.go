package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mizuojisan/geoquest/game/racing"
	"github.com/mizuojisan/geoquest/game/rpg"
	"github.com/mizuojisan/geoquest/game/service"
)

var (
	ErrPackNotFound = errors.New("content pack not found")
	ErrInvalidPack  = errors.New("invalid content pack")
)

// Pack bundles the content tables for both engines under one name. A
// pack file may omit either section; the omitted engine falls back to
// its built-in defaults.
type Pack struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	RPG         *rpg.Content    `json:"rpg,omitempty"`
	Racing      *racing.Content `json:"racing,omitempty"`
}

// ValidatePack checks a pack's tables with each engine's validator.
func ValidatePack(p *Pack) error {
	if p.Name == "" {
		return fmt.Errorf("pack name is required")
	}
	if p.RPG != nil {
		if err := rpg.ValidateContent(p.RPG); err != nil {
			return fmt.Errorf("rpg content: %w", err)
		}
	}
	if p.Racing != nil {
		if err := racing.ValidateContent(p.Racing); err != nil {
			return fmt.Errorf("racing content: %w", err)
		}
	}
	return nil
}

// Manager handles content pack loading and caching
type Manager struct {
	packDir     string
	defaultPack *Pack
	defaultName string
	packs       map[string]*Pack
	mu          sync.RWMutex
}

// NewManager creates a new content pack manager
func NewManager(packDir string) (*Manager, error) {
	// Ensure pack directory exists
	if _, err := os.Stat(packDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("pack directory does not exist: %s", packDir)
	}

	m := &Manager{
		packDir: packDir,
		packs:   make(map[string]*Pack),
	}

	// Load default pack
	if err := m.loadDefaultPack(); err != nil {
		return nil, fmt.Errorf("failed to load default pack: %w", err)
	}

	return m, nil
}

// LoadPack loads a content pack by name
func (m *Manager) LoadPack(name string) (*Pack, error) {
	m.mu.RLock()
	// Check cache first
	if pack, exists := m.packs[name]; exists {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if pack, exists := m.packs[name]; exists {
		return pack, nil
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	packPath := filepath.Join(m.packDir, filename)

	data, err := os.ReadFile(packPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack: %w", err)
	}

	if err := ValidatePack(&pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	// Cache the pack
	m.packs[name] = &pack
	return &pack, nil
}

// BuildEngines creates a fresh pair of game engines from the named
// pack. The built-in default pack is used when the name matches the
// default and no file shadows it.
func (m *Manager) BuildEngines(packName string) (*rpg.Game, *racing.Game, error) {
	pack, err := m.LoadPack(packName)
	if err != nil {
		if errors.Is(err, ErrPackNotFound) && packName == m.DefaultName() {
			pack = m.GetDefault()
		} else {
			return nil, nil, err
		}
	}

	rpgGame, err := rpg.New(pack.RPG)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	racingGame, err := racing.New(pack.Racing)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	return rpgGame, racingGame, nil
}

// ListPacks returns information about all available content packs
func (m *Manager) ListPacks() ([]*service.PackInfo, error) {
	entries, err := os.ReadDir(m.packDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack directory: %w", err)
	}

	var packs []*service.PackInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Remove .json extension for pack name
		name := strings.TrimSuffix(entry.Name(), ".json")

		pack, err := m.LoadPack(name)
		if err != nil {
			// Skip invalid packs
			continue
		}

		packs = append(packs, packInfo(entry.Name(), name, pack))
	}

	// The built-in default is always listed, even with an empty
	// pack directory.
	if len(packs) == 0 {
		if def := m.GetDefault(); def != nil {
			packs = append(packs, packInfo("", m.DefaultName(), def))
		}
	}

	return packs, nil
}

// GetDefault returns the default content pack
func (m *Manager) GetDefault() *Pack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPack
}

// DefaultName returns the name sessions get when no pack is requested.
func (m *Manager) DefaultName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName
}

// SetDefault sets the default content pack by name
func (m *Manager) SetDefault(name string) error {
	pack, err := m.LoadPack(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPack = pack
	m.defaultName = name
	return nil
}

// RefreshCache reloads all cached packs from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.packs = make(map[string]*Pack)
	m.mu.Unlock()

	return m.loadDefaultPack()
}

// loadDefaultPack picks the default pack: classic.json if present,
// else the first pack on disk, else the built-in tables.
func (m *Manager) loadDefaultPack() error {
	pack, err := m.LoadPack("classic")
	if err == nil {
		m.mu.Lock()
		m.defaultPack = pack
		m.defaultName = "classic"
		m.mu.Unlock()
		return nil
	}

	packs, listErr := m.ListPacks()
	if listErr == nil && len(packs) > 0 && packs[0].Filename != "" {
		name := strings.TrimSuffix(packs[0].Filename, ".json")
		if pack, err := m.LoadPack(name); err == nil {
			m.mu.Lock()
			m.defaultPack = pack
			m.defaultName = name
			m.mu.Unlock()
			return nil
		}
	}

	m.mu.Lock()
	m.defaultPack = builtinPack()
	m.defaultName = "default"
	m.mu.Unlock()
	return nil
}

// SavePack validates and writes a raw pack document to disk
func (m *Manager) SavePack(name string, raw []byte) error {
	var pack Pack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if err := ValidatePack(&pack); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	packPath := filepath.Join(m.packDir, filename)

	// Re-marshal with indentation rather than writing raw bytes
	data, err := json.MarshalIndent(&pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pack: %w", err)
	}

	if err := os.WriteFile(packPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.packs[strings.TrimSuffix(filename, ".json")] = &pack
	m.mu.Unlock()

	return nil
}

// builtinPack wraps each engine's default tables
func builtinPack() *Pack {
	return &Pack{
		Name:        "default",
		Description: "Built-in content for both game modes",
		RPG:         rpg.DefaultContent(),
		Racing:      racing.DefaultContent(),
	}
}

// packInfo summarizes a pack for listings
func packInfo(filename, id string, pack *Pack) *service.PackInfo {
	info := &service.PackInfo{
		Filename:    filename,
		PackID:      id,
		Name:        pack.Name,
		Description: pack.Description,
	}
	if pack.RPG != nil {
		info.Enemies = len(pack.RPG.Enemies)
	}
	if pack.Racing != nil {
		info.Vehicles = len(pack.Racing.Vehicles)
		info.Courses = len(pack.Racing.Courses)
	}
	return info
}
