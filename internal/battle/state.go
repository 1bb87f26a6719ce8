// Package battle implements the combat core: the per-combatant mutable
// state, the damage/hit/turn-order calculator, the effect strategies and
// the manager that sequences them within a turn. Everything here is pure
// computation over in-memory state; persistence and coordination live in
// the room and service packages.
package battle

import (
	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// CombatState is the mutable per-combatant record embedded in a room.
// The immutable stat snapshot lives next to it in the aggregate and is
// never touched by the engine.
type CombatState struct {
	MaxHP     int `json:"max_hp"`
	CurrentHP int `json:"current_hp"`

	// Stages holds temporary stat modifiers. Ordinary stats stay within
	// [-6, 6]; the crit stage within [0, 3]. Missing keys mean stage 0.
	Stages map[catalog.StatName]int `json:"stages"`

	Ailment     catalog.Ailment `json:"status_ailment"`
	StatusTurns int             `json:"status_turns"`

	// Volatile maps short-lived flags (flinch, protect, confusion) to a
	// remaining-turn counter. Flinch and protect are cleared every turn;
	// confusion counts down across turns.
	Volatile map[string]int `json:"volatile"`

	// PP maps move id -> remaining uses.
	PP map[int]int `json:"pp"`
}

// NewCombatState seeds a fresh combat state from the combatant's persisted
// health and learned move set.
func NewCombatState(maxHP int, learned []int) *CombatState {
	s := &CombatState{
		MaxHP:     maxHP,
		CurrentHP: maxHP,
		Stages:    make(map[catalog.StatName]int),
		Volatile:  make(map[string]int),
		PP:        make(map[int]int, len(learned)),
	}
	for _, id := range learned {
		if mv, ok := catalog.MoveByID(id); ok {
			s.PP[id] = mv.MaxPP
		}
	}
	return s
}

// Stage returns the current stage for a stat (0 when unset).
func (s *CombatState) Stage(stat catalog.StatName) int {
	return s.Stages[stat]
}

// SetStage stores a stage value, clamped to the stat's legal bound.
func (s *CombatState) SetStage(stat catalog.StatName, value int) {
	if s.Stages == nil {
		s.Stages = make(map[catalog.StatName]int)
	}
	if stat == catalog.StatCrit {
		s.Stages[stat] = catalog.ClampCritStage(value)
		return
	}
	s.Stages[stat] = catalog.ClampStage(value)
}

// ApplyDamage subtracts HP, clamping at zero, and returns the amount
// actually dealt.
func (s *CombatState) ApplyDamage(n int) int {
	if n < 0 {
		n = 0
	}
	if n > s.CurrentHP {
		n = s.CurrentHP
	}
	s.CurrentHP -= n
	return n
}

// Heal restores HP, clamping at MaxHP, and returns the amount actually
// restored.
func (s *CombatState) Heal(n int) int {
	if n < 0 {
		n = 0
	}
	if s.CurrentHP+n > s.MaxHP {
		n = s.MaxHP - s.CurrentHP
	}
	s.CurrentHP += n
	return n
}

// IsFainted reports whether this combatant is out of the battle.
func (s *CombatState) IsFainted() bool {
	return s.CurrentHP <= 0
}

// HasVolatile reports whether a volatile flag is currently set.
func (s *CombatState) HasVolatile(name string) bool {
	if s.Volatile == nil {
		return false
	}
	_, ok := s.Volatile[name]
	return ok
}

// SetVolatile stores a volatile flag with its remaining-turn counter.
func (s *CombatState) SetVolatile(name string, turns int) {
	if s.Volatile == nil {
		s.Volatile = make(map[string]int)
	}
	s.Volatile[name] = turns
}

// HasUsablePP reports whether any tracked move still has PP left.
func (s *CombatState) HasUsablePP() bool {
	for _, pp := range s.PP {
		if pp > 0 {
			return true
		}
	}
	return false
}

// SpendPP decrements the PP of a move if it is tracked. Struggle and other
// untracked moves pass through unchanged.
func (s *CombatState) SpendPP(moveID int) {
	if pp, ok := s.PP[moveID]; ok && pp > 0 {
		s.PP[moveID] = pp - 1
	}
}

// FieldEffects are the shared environmental modifiers of a room. Both
// combatants read the same instance during damage calculation.
type FieldEffects struct {
	Weather  string `json:"weather"`
	Location string `json:"location"`
}

// Set overwrites a named field-effect slot. Unknown slots are ignored.
func (f *FieldEffects) Set(slot, value string) {
	switch slot {
	case catalog.FieldSlotWeather:
		f.Weather = value
	case "location":
		f.Location = value
	}
}

// Log entry kinds attached to turn results.
const (
	LogKindMove   = "move"
	LogKindEffect = "effect"
	LogKindStatus = "status"
	LogKindFaint  = "faint"
	LogKindInfo   = "info"
)

// LogEntry is one structured line of the consolidated turn result.
type LogEntry struct {
	Actor string `json:"actor,omitempty"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
}
