package battle

import (
	"math"
	"math/rand"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// Effectiveness classifies the elemental outcome of a hit.
type Effectiveness int

const (
	EffectivenessImmune Effectiveness = iota
	EffectivenessNotVery
	EffectivenessNormal
	EffectivenessSuper
)

func (e Effectiveness) String() string {
	switch e {
	case EffectivenessImmune:
		return "immune"
	case EffectivenessNotVery:
		return "not_very"
	case EffectivenessSuper:
		return "super"
	default:
		return "normal"
	}
}

// DamageResult is the outcome of a single damage computation.
type DamageResult struct {
	Damage        int
	Critical      bool
	Effectiveness Effectiveness
}

// effectiveStat applies the stage multiplier for the given stage stat to a
// base stat value.
func effectiveStat(base int, state *CombatState, stat catalog.StatName) float64 {
	v := float64(base) * catalog.StageMultiplier(state.Stage(stat))
	if v < 1 {
		v = 1
	}
	return v
}

// effectiveAgility returns stage-modified agility. Paralysis halves it only
// where the caller asks for it (turn ordering), not in hit calculation.
func effectiveAgility(stats catalog.Stats, state *CombatState, withParalysis bool) float64 {
	agi := effectiveStat(stats.Agility, state, catalog.StatAgility)
	if withParalysis && state.Ailment == catalog.AilmentParalysis {
		agi /= 2
	}
	if agi < 1 {
		agi = 1
	}
	return agi
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// critChance computes the critical-hit probability in percent, clamped to
/// [0, 100]: 5 + luck*0.5 + crit stage bonus.
func critChance(stats catalog.Stats, state *CombatState) float64 {
	c := 5 + float64(stats.Luck)*0.5 + catalog.CritStageBonus(state.Stage(catalog.StatCrit))
	return clampFloat(c, 0, 100)
}

// movePower returns the move's power after HP-loss scaling. Moves flagged
// ScalesWithLostHP grow up to 3x as the attacker's HP approaches zero.
func movePower(mv catalog.Move, attacker *CombatState) float64 {
	power := float64(mv.Power)
	if mv.ScalesWithLostHP && attacker.MaxHP > 0 {
		lost := 1 - float64(attacker.CurrentHP)/float64(attacker.MaxHP)
		power *= 1 + 2*lost
	}
	return power
}

// ComputeDamage resolves one hit: stage-modified stats, burn penalty,
// critical roll, elemental and weather multipliers and the uniform random
// factor. The result is floored and clamped to a minimum of 1 unless the
// defender is elementally immune (exactly 0 then). A zero-power move deals
// no damage.
func ComputeDamage(rng *rand.Rand, atkStats catalog.Stats, attacker *CombatState, defStats catalog.Stats, defender *CombatState, mv catalog.Move, defenderElement catalog.Element, field FieldEffects) DamageResult {
	if mv.Power <= 0 {
		return DamageResult{Damage: 0, Critical: false, Effectiveness: EffectivenessNormal}
	}

	var attack, defense float64
	if mv.Category == catalog.CategorySpecial {
		attack = effectiveStat(atkStats.Intelligence, attacker, catalog.StatIntelligence)
		defense = effectiveStat(defStats.Intelligence, defender, catalog.StatIntelligence)
	} else {
		attack = effectiveStat(atkStats.Strength, attacker, catalog.StatStrength)
		defense = effectiveStat(defStats.Defense, defender, catalog.StatDefense)
	}
	// Burn halves attack; paralysis does not affect this calculation.
	if attacker.Ailment == catalog.AilmentBurn {
		attack /= 2
	}
	if defense < 1 {
		defense = 1
	}

	base := (attack/defense)*movePower(mv, attacker)*0.5 + 2

	critical := rng.Float64()*100 < critChance(atkStats, attacker)
	if critical {
		base *= 1.5
	}

	typeMult := catalog.TypeMultiplier(mv.Element, defenderElement)
	weatherMult := catalog.WeatherDamageScale(field.Weather, mv.Element)
	randFactor := 0.85 + rng.Float64()*0.15

	damage := int(math.Floor(base * typeMult * weatherMult * randFactor))

	eff := EffectivenessNormal
	switch {
	case typeMult == 0:
		eff = EffectivenessImmune
	case typeMult < 1:
		eff = EffectivenessNotVery
	case typeMult > 1:
		eff = EffectivenessSuper
	}

	if eff == EffectivenessImmune {
		return DamageResult{Damage: 0, Critical: critical, Effectiveness: eff}
	}
	if damage < 1 {
		damage = 1
	}
	return DamageResult{Damage: damage, Critical: critical, Effectiveness: eff}
}

// CheckHit decides whether a move connects. Moves with accuracy >= 1000
// always hit. Otherwise the chance is the move accuracy scaled by the
// agility ratio and the net accuracy/evasion stage multiplier, clamped to
// [20, 100].
func CheckHit(rng *rand.Rand, atkStats catalog.Stats, attacker *CombatState, defStats catalog.Stats, defender *CombatState, mv catalog.Move) bool {
	if mv.Accuracy >= catalog.AlwaysHitAccuracy {
		return true
	}

	net := catalog.ClampStage(attacker.Stage(catalog.StatAccuracy) - defender.Stage(catalog.StatEvasion))
	var stageMult float64
	if net >= 0 {
		stageMult = float64(3+net) / 3
	} else {
		stageMult = 3 / float64(3-net)
	}

	agiRatio := effectiveAgility(atkStats, attacker, false) / effectiveAgility(defStats, defender, false)
	chance := clampFloat(float64(mv.Accuracy)*agiRatio*stageMult, 20, 100)
	return rng.Float64()*100 < chance
}

// DetermineTurnOrder picks who acts first: higher move priority wins, then
// higher effective agility (halved for paralyzed combatants), then a coin
// flip. The ordering is re-derived every turn, never cached.
func DetermineTurnOrder(rng *rand.Rand, stats1 catalog.Stats, state1 *CombatState, mv1 catalog.Move, stats2 catalog.Stats, state2 *CombatState, mv2 catalog.Move) int {
	if mv1.Priority != mv2.Priority {
		if mv1.Priority > mv2.Priority {
			return 1
		}
		return 2
	}
	agi1 := effectiveAgility(stats1, state1, true)
	agi2 := effectiveAgility(stats2, state2, true)
	if agi1 != agi2 {
		if agi1 > agi2 {
			return 1
		}
		return 2
	}
	return rng.Intn(2) + 1
}
