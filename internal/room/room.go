// Package room defines the battle-room aggregate and its persistence in
// an external key-value store. The aggregate is the single unit of shared
// mutable state between the two connections fighting in a room; the only
// writer allowed at a time is the holder of the turn lock.
package room

import (
	"time"

	"github.com/y122132/pet-trainer-sub000/internal/battle"
	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// SchemaVersion is bumped whenever the persisted room document changes
// shape. Loading a document with a different version fails instead of
// silently dropping fields.
const SchemaVersion = 1

// Room is the aggregate root, persisted as one JSON document keyed by the
// room id. Selections live in a separate per-room hash so a submit is a
// single atomic write instead of a read-modify-write of the document.
type Room struct {
	SchemaVersion int    `json:"schema_version"`
	ID            string `json:"id"`

	// Players holds 0-2 combatant ids; one may be the reserved bot id.
	Players []string `json:"players"`

	// CharacterStats are immutable snapshots captured at join time.
	CharacterStats map[string]catalog.Stats `json:"character_stats"`

	PetNames      map[string]string `json:"pet_names"`
	PetTypes      map[string]string `json:"pet_types"`
	LearnedSkills map[string][]int  `json:"learned_skills"`

	BattleStates map[string]*battle.CombatState `json:"battle_states"`

	TurnCount  int                 `json:"turn_count"`
	Field      battle.FieldEffects `json:"field_effects"`
	IsAIBattle bool                `json:"is_ai_battle"`
	CreatedAt  time.Time           `json:"created_at"`
}

// New creates an empty room aggregate.
func New(id string) *Room {
	return &Room{
		SchemaVersion:  SchemaVersion,
		ID:             id,
		Players:        make([]string, 0, 2),
		CharacterStats: make(map[string]catalog.Stats),
		PetNames:       make(map[string]string),
		PetTypes:       make(map[string]string),
		LearnedSkills:  make(map[string][]int),
		BattleStates:   make(map[string]*battle.CombatState),
		CreatedAt:      time.Now().UTC(),
	}
}

// AddCombatant records a combatant's snapshot and seeds its combat state
// from the persisted current health. A persisted value in (0, max) carries
// over; zero or out-of-range values seed a full health bar, so a pet that
// fainted in its last battle re-enters rested rather than unplayable.
func (r *Room) AddCombatant(userID, petName, speciesName string, stats catalog.Stats, learned []int, currentHP int) {
	r.Players = append(r.Players, userID)
	r.CharacterStats[userID] = stats
	r.PetNames[userID] = petName
	r.PetTypes[userID] = speciesName
	r.LearnedSkills[userID] = learned

	state := battle.NewCombatState(stats.MaxHealth, learned)
	if currentHP > 0 && currentHP < state.MaxHP {
		state.CurrentHP = currentHP
	}
	r.BattleStates[userID] = state
}

// HasPlayer reports roster membership.
func (r *Room) HasPlayer(userID string) bool {
	for _, p := range r.Players {
		if p == userID {
			return true
		}
	}
	return false
}

// Opponent returns the other combatant's id.
func (r *Room) Opponent(userID string) (string, bool) {
	for _, p := range r.Players {
		if p != userID {
			return p, true
		}
	}
	return "", false
}

// HasLearned reports whether the combatant may use the given move.
func (r *Room) HasLearned(userID string, moveID int) bool {
	for _, id := range r.LearnedSkills[userID] {
		if id == moveID {
			return true
		}
	}
	return false
}

// SpeciesElement resolves a combatant's elemental type from the catalog,
// defaulting to normal for unknown species tags.
func (r *Room) SpeciesElement(userID string) catalog.Element {
	if sp, ok := catalog.SpeciesByName(r.PetTypes[userID]); ok {
		return sp.Element
	}
	return catalog.ElementNormal
}
