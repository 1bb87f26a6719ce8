// Package storage persists trainer profiles and pets in sqlite via GORM.
// It backs the two collaborator interfaces the battle core consumes: the
// character/stat provider that seeds rooms, and the reward/progression
// service invoked when a room reaches a terminal state.
package storage

import (
	"gorm.io/gorm"
)

// Trainer stores unique player identity and aggregate battle stats.
type Trainer struct {
	gorm.Model
	UserID      string `json:"user_id" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
}

func (Trainer) TableName() string { return "trainer_profiles" }

// Pet is the persisted creature a trainer battles with. Its concrete stats
// are materialized here (not recomputed from the species table) so battles
// see exactly what progression produced.
type Pet struct {
	gorm.Model
	OwnerID string `json:"owner_id" gorm:"index"`
	Name    string `json:"name"`
	Species string `json:"species"`

	Level      int `json:"level"`
	Experience int `json:"experience"`

	Strength      int `json:"strength"`
	Defense       int `json:"defense"`
	Agility       int `json:"agility"`
	Intelligence  int `json:"intelligence"`
	Luck          int `json:"luck"`
	MaxHealth     int `json:"max_health"`
	CurrentHealth int `json:"current_health"`
}

// RewardResult summarizes what one combatant earned when a battle ended.
// It is delivered to that combatant inside the GAME_OVER event.
type RewardResult struct {
	ExperienceGained int    `json:"experience_gained"`
	Level            int    `json:"level"`
	LeveledUp        bool   `json:"leveled_up"`
	UnlockedMoves    []int  `json:"unlocked_moves,omitempty"`
	Outcome          string `json:"outcome"`
}
