package battle

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// ApplyMoveEffects rolls the move's effect-trigger chance once and, on
// success, applies each normalized effect descriptor in order, collecting
// the observable log entries.
func ApplyMoveEffects(rng *rand.Rand, mv catalog.Move, attacker, defender *CombatState, field *FieldEffects, attackerName, defenderName string) []LogEntry {
	if len(mv.Effects) == 0 {
		return nil
	}
	if mv.EffectChance < 100 && rng.Intn(100) >= mv.EffectChance {
		return nil
	}
	var entries []LogEntry
	for _, eff := range mv.Effects {
		if entry := ApplyEffect(rng, eff, attacker, defender, field, attackerName, defenderName); entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries
}

// ProcessStatusEffects runs the fixed end-of-turn sequence for one
// combatant: clear single-turn volatiles, tick down confusion, then apply
// periodic ailment damage and expiry. Returns the damage dealt and one
// consolidated log entry (nil when nothing observable happened).
func ProcessStatusEffects(state *CombatState, name string) (int, *LogEntry) {
	// Single-turn volatiles go away unconditionally, before anything else.
	delete(state.Volatile, catalog.VolatileFlinch)
	delete(state.Volatile, catalog.VolatileProtect)

	var parts []string

	if turns, ok := state.Volatile[catalog.VolatileConfusion]; ok {
		turns--
		if turns <= 0 {
			delete(state.Volatile, catalog.VolatileConfusion)
			parts = append(parts, fmt.Sprintf("%s snapped out of confusion!", name))
		} else {
			state.Volatile[catalog.VolatileConfusion] = turns
		}
	}

	damage := 0
	if state.Ailment != catalog.AilmentNone {
		info, ok := catalog.AilmentByName(state.Ailment)
		if ok && info.DamageDivisor > 0 {
			damage = state.MaxHP / info.DamageDivisor
			if damage < 1 {
				damage = 1
			}
			damage = state.ApplyDamage(damage)
			parts = append(parts, fmt.Sprintf("%s is hurt by being %s (%d)!", name, info.Display, damage))
		}
		state.StatusTurns--
		if state.StatusTurns <= 0 {
			display := string(state.Ailment)
			if ok {
				display = info.Display
			}
			state.Ailment = catalog.AilmentNone
			state.StatusTurns = 0
			parts = append(parts, fmt.Sprintf("%s is no longer %s!", name, display))
		}
	}

	if len(parts) == 0 {
		return damage, nil
	}
	return damage, &LogEntry{Actor: name, Kind: LogKindStatus, Text: strings.Join(parts, " ")}
}

// CanMove decides whether a combatant may act this turn. Conditions are
// checked in a fixed priority order and the first blocking one
// short-circuits the rest: flinch, confusion (33% self-hit), paralysis
// (25%), sleep (always). Flinch consumes its flag even when it blocks, so
// a combatant that is both flinched and confused never rolls the
// confusion check this turn; this matches the original engine's ordering.
func CanMove(rng *rand.Rand, state *CombatState, name string) (bool, *LogEntry, int) {
	if state.HasVolatile(catalog.VolatileFlinch) {
		delete(state.Volatile, catalog.VolatileFlinch)
		return false, &LogEntry{Actor: name, Kind: LogKindStatus, Text: fmt.Sprintf("%s flinched and couldn't move!", name)}, 0
	}

	if state.HasVolatile(catalog.VolatileConfusion) {
		if rng.Intn(100) < 33 {
			damage := state.MaxHP / 10
			if damage < 1 {
				damage = 1
			}
			damage = state.ApplyDamage(damage)
			return false, &LogEntry{Actor: name, Kind: LogKindStatus, Text: fmt.Sprintf("%s is confused! It hurt itself in its confusion (%d)!", name, damage)}, damage
		}
	}

	if state.Ailment == catalog.AilmentParalysis {
		if rng.Intn(100) < 25 {
			return false, &LogEntry{Actor: name, Kind: LogKindStatus, Text: fmt.Sprintf("%s is paralyzed and can't move!", name)}, 0
		}
	}

	if state.Ailment == catalog.AilmentSleep {
		return false, &LogEntry{Actor: name, Kind: LogKindStatus, Text: fmt.Sprintf("%s is fast asleep.", name)}, 0
	}

	return true, nil, 0
}
