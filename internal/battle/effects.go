package battle

import (
	"fmt"
	"math/rand"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// ApplyEffect applies a single normalized effect descriptor and returns a
// structured log entry, or nil when the effect had no observable change.
// The switch over EffectKind is exhaustive: a new kind fails loudly here
// instead of being silently skipped.
func ApplyEffect(rng *rand.Rand, eff catalog.Effect, actor, opponent *CombatState, field *FieldEffects, actorName, opponentName string) *LogEntry {
	target, targetName := actor, actorName
	if eff.Target == catalog.TargetOpponent {
		target, targetName = opponent, opponentName
	}

	switch eff.Kind {
	case catalog.EffectStatStage:
		return applyStatStage(eff, target, targetName)
	case catalog.EffectAilment:
		return applyAilment(rng, eff, target, targetName)
	case catalog.EffectVolatile:
		return applyVolatile(eff, target, targetName)
	case catalog.EffectHeal:
		return applyHeal(eff, target, targetName)
	case catalog.EffectFieldChange:
		return applyFieldChange(eff, field)
	case catalog.EffectRecoil:
		return applyRecoil(eff, target, targetName)
	default:
		panic(fmt.Sprintf("battle: unhandled effect kind %d", eff.Kind))
	}
}

func applyStatStage(eff catalog.Effect, target *CombatState, targetName string) *LogEntry {
	current := target.Stage(eff.Stat)
	var next int
	if eff.Stat == catalog.StatCrit {
		next = catalog.ClampCritStage(current + eff.Stages)
	} else {
		next = catalog.ClampStage(current + eff.Stages)
	}
	if next == current {
		direction := "higher"
		if eff.Stages < 0 {
			direction = "lower"
		}
		return &LogEntry{Actor: targetName, Kind: LogKindEffect, Text: fmt.Sprintf("%s's %s won't go any %s!", targetName, eff.Stat, direction)}
	}
	target.SetStage(eff.Stat, next)

	verb := "rose"
	if eff.Stages < 0 {
		verb = "fell"
	}
	if eff.Stages >= 2 || eff.Stages <= -2 {
		verb = verb + " sharply"
	}
	return &LogEntry{Actor: targetName, Kind: LogKindEffect, Text: fmt.Sprintf("%s's %s %s!", targetName, eff.Stat, verb)}
}

func applyAilment(rng *rand.Rand, eff catalog.Effect, target *CombatState, targetName string) *LogEntry {
	if target.Ailment != catalog.AilmentNone {
		return nil
	}
	info, ok := catalog.AilmentByName(eff.Ailment)
	if !ok {
		return nil
	}
	target.Ailment = eff.Ailment
	target.StatusTurns = info.MinTurns + rng.Intn(info.MaxTurns-info.MinTurns+1)
	return &LogEntry{Actor: targetName, Kind: LogKindStatus, Text: fmt.Sprintf("%s is %s!", targetName, info.Display)}
}

func applyVolatile(eff catalog.Effect, target *CombatState, targetName string) *LogEntry {
	if target.HasVolatile(eff.Volatile) {
		return nil
	}
	target.SetVolatile(eff.Volatile, eff.Turns)
	switch eff.Volatile {
	case catalog.VolatileConfusion:
		return &LogEntry{Actor: targetName, Kind: LogKindStatus, Text: fmt.Sprintf("%s became confused!", targetName)}
	case catalog.VolatileProtect:
		return &LogEntry{Actor: targetName, Kind: LogKindStatus, Text: fmt.Sprintf("%s braced itself!", targetName)}
	default:
		// Flinch has no announcement of its own; it shows up when the
		// target fails to act.
		return nil
	}
}

func applyHeal(eff catalog.Effect, target *CombatState, targetName string) *LogEntry {
	if target.CurrentHP >= target.MaxHP {
		return &LogEntry{Actor: targetName, Kind: LogKindEffect, Text: fmt.Sprintf("%s's HP is already full!", targetName)}
	}
	amount := target.MaxHP * eff.Percent / 100
	if amount < 1 {
		amount = 1
	}
	healed := target.Heal(amount)
	return &LogEntry{Actor: targetName, Kind: LogKindEffect, Text: fmt.Sprintf("%s recovered %d HP!", targetName, healed)}
}

func applyFieldChange(eff catalog.Effect, field *FieldEffects) *LogEntry {
	field.Set(eff.Slot, eff.Value)
	text := fmt.Sprintf("The field changed: %s is now %s.", eff.Slot, eff.Value)
	switch eff.Value {
	case catalog.WeatherSunny:
		text = "The sunlight turned harsh!"
	case catalog.WeatherRain:
		text = "It started to rain!"
	}
	return &LogEntry{Kind: LogKindEffect, Text: text}
}

func applyRecoil(eff catalog.Effect, target *CombatState, targetName string) *LogEntry {
	damage := target.MaxHP * eff.Percent / 100
	if damage < 1 {
		damage = 1
	}
	dealt := target.ApplyDamage(damage)
	return &LogEntry{Actor: targetName, Kind: LogKindEffect, Text: fmt.Sprintf("%s is hurt by recoil (%d)!", targetName, dealt)}
}
