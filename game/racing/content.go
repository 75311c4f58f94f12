package racing

import (
	"fmt"

	"github.com/mizuojisan/geoquest/game/geo"
)

// Content bundles the vehicle roster and course catalog the engine
// draws from.
type Content struct {
	Vehicles []Vehicle `json:"vehicles"`
	Courses  []Course  `json:"courses"`
	Start    *Profile  `json:"start,omitempty"`
}

// DefaultContent returns the built-in roster and catalog.
func DefaultContent() *Content {
	return &Content{
		Vehicles: []Vehicle{
			{
				Name:         "Compact Car",
				MaxSpeed:     120,
				Acceleration: 0.8,
				Handling:     0.9,
				Price:        0,
				Owned:        true,
				Description:  "Economical and forgiving; a solid starter car",
			},
			{
				Name:         "Sports Car",
				MaxSpeed:     200,
				Acceleration: 1.2,
				Handling:     0.7,
				Price:        5000,
				Owned:        false,
				Description:  "A performance car built for top speed",
			},
			{
				Name:         "SUV",
				MaxSpeed:     150,
				Acceleration: 0.6,
				Handling:     0.8,
				Price:        3000,
				Owned:        false,
				Description:  "Stable and strong on rough roads",
			},
			{
				Name:         "Race Car",
				MaxSpeed:     300,
				Acceleration: 1.5,
				Handling:     0.6,
				Price:        15000,
				Owned:        false,
				Description:  "A pro-spec machine with peak performance",
			},
		},
		Courses: []Course{
			{
				Name:        "City Street Circuit",
				Difficulty:  "Easy",
				Laps:        2,
				Description: "A beginner-friendly run through town",
				Reward:      200,
			},
			{
				Name:        "Highway Challenge",
				Difficulty:  "Medium",
				Laps:        3,
				Description: "A straight-line speed duel on the expressway",
				Reward:      500,
			},
			{
				Name:        "Mountain Pass Drift",
				Difficulty:  "Hard",
				Laps:        5,
				Description: "A technical course of winding mountain roads",
				Reward:      1000,
			},
		},
	}
}

// defaultStartingProfile is the fresh racing player.
func defaultStartingProfile() Profile {
	return Profile{
		Name:     "Player",
		Position: geo.Position{Lat: 35.6762, Lng: 139.6503},
		Money:    1000,
		Level:    1,
	}
}

// ValidateContent rejects rosters and catalogs the engine cannot run
// on.
func ValidateContent(c *Content) error {
	if c == nil {
		return fmt.Errorf("content cannot be nil")
	}
	if len(c.Vehicles) == 0 {
		return fmt.Errorf("content must define at least one vehicle")
	}
	owned := 0
	for _, v := range c.Vehicles {
		if v.Name == "" {
			return fmt.Errorf("vehicle with empty name")
		}
		if v.MaxSpeed <= 0 {
			return fmt.Errorf("vehicle %s has nonpositive max speed", v.Name)
		}
		if v.Price < 0 {
			return fmt.Errorf("vehicle %s has negative price", v.Name)
		}
		if v.Owned {
			owned++
		}
	}
	if owned == 0 {
		return fmt.Errorf("content must mark at least one vehicle as owned")
	}
	if len(c.Courses) == 0 {
		return fmt.Errorf("content must define at least one course")
	}
	for _, course := range c.Courses {
		if course.Name == "" {
			return fmt.Errorf("course with empty name")
		}
		if course.Laps <= 0 {
			return fmt.Errorf("course %s has nonpositive lap count", course.Name)
		}
		if course.Reward <= 0 {
			return fmt.Errorf("course %s has nonpositive reward", course.Name)
		}
	}
	if c.Start != nil && c.Start.CurrentVehicle >= len(c.Vehicles) {
		return fmt.Errorf("starting profile selects vehicle %d of %d", c.Start.CurrentVehicle, len(c.Vehicles))
	}
	return nil
}
