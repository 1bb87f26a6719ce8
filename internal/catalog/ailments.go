package catalog

// Ailment is a persistent status condition. A combatant carries at most one
// ailment at a time; volatile flags are tracked separately.
type Ailment string

const (
	AilmentNone      Ailment = ""
	AilmentPoison    Ailment = "poison"
	AilmentBurn      Ailment = "burn"
	AilmentParalysis Ailment = "paralysis"
	AilmentBleed     Ailment = "bleed"
	AilmentFear      Ailment = "fear"
	AilmentSleep     Ailment = "sleep"
)

// AilmentInfo describes an ailment's display text, its drawn duration range
// and the divisor used for periodic damage (max HP / divisor per turn).
// A zero divisor means the ailment deals no periodic damage.
type AilmentInfo struct {
	Display       string
	MinTurns      int
	MaxTurns      int
	DamageDivisor int
}

var ailments = map[Ailment]AilmentInfo{
	AilmentPoison:    {Display: "poisoned", MinTurns: 2, MaxTurns: 5, DamageDivisor: 8},
	AilmentBurn:      {Display: "burned", MinTurns: 2, MaxTurns: 4, DamageDivisor: 8},
	AilmentParalysis: {Display: "paralyzed", MinTurns: 2, MaxTurns: 4, DamageDivisor: 0},
	AilmentBleed:     {Display: "bleeding", MinTurns: 2, MaxTurns: 3, DamageDivisor: 8},
	AilmentFear:      {Display: "terrified", MinTurns: 1, MaxTurns: 2, DamageDivisor: 0},
	AilmentSleep:     {Display: "asleep", MinTurns: 1, MaxTurns: 3, DamageDivisor: 0},
}

// AilmentByName returns the metadata for a known ailment.
func AilmentByName(a Ailment) (AilmentInfo, bool) {
	info, ok := ailments[a]
	return info, ok
}
