package catalog

// EffectKind enumerates every move effect the engine knows how to apply.
// The battle package switches over this exhaustively; adding a kind here
// forces the corresponding strategy to be written.
type EffectKind int

const (
	EffectStatStage EffectKind = iota
	EffectAilment
	EffectVolatile
	EffectHeal
	EffectFieldChange
	EffectRecoil
)

// Target selects which side of the exchange an effect applies to.
type Target int

const (
	TargetSelf Target = iota
	TargetOpponent
)

// Effect is one normalized effect descriptor attached to a move. Only the
// fields relevant to its Kind are set.
type Effect struct {
	Kind   EffectKind
	Target Target

	// EffectStatStage
	Stat   StatName
	Stages int

	// EffectAilment
	Ailment Ailment

	// EffectVolatile
	Volatile string
	Turns    int

	// EffectHeal / EffectRecoil: percentage of max HP
	Percent int

	// EffectFieldChange
	Slot  string
	Value string
}

// AlwaysHitAccuracy marks a move that bypasses the hit check entirely.
const AlwaysHitAccuracy = 1000

// Move is an immutable catalog entry.
type Move struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Power    int      `json:"power"`
	Accuracy int      `json:"accuracy"`
	Priority int      `json:"priority"`
	Category Category `json:"category"`
	Element  Element  `json:"element"`
	MaxPP    int      `json:"max_pp"`

	// Effects are applied after damage when a single roll against
	// EffectChance succeeds. 100 means the effects always apply.
	Effects      []Effect `json:"-"`
	EffectChance int      `json:"-"`

	// ScalesWithLostHP boosts power as the attacker's HP drops.
	ScalesWithLostHP bool `json:"-"`
}

// MoveIDStruggle is the fallback move forced when every learned move is out
// of PP. It is not part of any learnset and does not consume PP.
const MoveIDStruggle = 99

var moves = map[int]Move{
	1:  {ID: 1, Name: "Tackle", Power: 40, Accuracy: 95, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 35, EffectChance: 100},
	2:  {ID: 2, Name: "Bite", Power: 45, Accuracy: 100, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 25, EffectChance: 20, Effects: []Effect{{Kind: EffectAilment, Target: TargetOpponent, Ailment: AilmentBleed}}},
	3:  {ID: 3, Name: "Ember", Power: 40, Accuracy: 100, Category: CategorySpecial, Element: ElementFire, MaxPP: 25, EffectChance: 10, Effects: []Effect{{Kind: EffectAilment, Target: TargetOpponent, Ailment: AilmentBurn}}},
	4:  {ID: 4, Name: "Water Gun", Power: 40, Accuracy: 100, Category: CategorySpecial, Element: ElementWater, MaxPP: 25, EffectChance: 100},
	5:  {ID: 5, Name: "Vine Whip", Power: 45, Accuracy: 100, Category: CategoryPhysical, Element: ElementGrass, MaxPP: 25, EffectChance: 100},
	6:  {ID: 6, Name: "Spark", Power: 40, Accuracy: 100, Category: CategorySpecial, Element: ElementElectric, MaxPP: 25, EffectChance: 10, Effects: []Effect{{Kind: EffectAilment, Target: TargetOpponent, Ailment: AilmentParalysis}}},
	7:  {ID: 7, Name: "Quick Attack", Power: 40, Accuracy: 100, Priority: 1, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 30, EffectChance: 100},
	8:  {ID: 8, Name: "Growl", Accuracy: 100, Category: CategoryStatus, Element: ElementNormal, MaxPP: 40, EffectChance: 100, Effects: []Effect{{Kind: EffectStatStage, Target: TargetOpponent, Stat: StatStrength, Stages: -1}}},
	9:  {ID: 9, Name: "Harden", Accuracy: AlwaysHitAccuracy, Category: CategoryStatus, Element: ElementNormal, MaxPP: 30, EffectChance: 100, Effects: []Effect{{Kind: EffectStatStage, Target: TargetSelf, Stat: StatDefense, Stages: 1}}},
	10: {ID: 10, Name: "Double Team", Accuracy: AlwaysHitAccuracy, Category: CategoryStatus, Element: ElementNormal, MaxPP: 15, EffectChance: 100, Effects: []Effect{{Kind: EffectStatStage, Target: TargetSelf, Stat: StatEvasion, Stages: 1}}},
	11: {ID: 11, Name: "Focus Energy", Accuracy: AlwaysHitAccuracy, Category: CategoryStatus, Element: ElementNormal, MaxPP: 30, EffectChance: 100, Effects: []Effect{{Kind: EffectStatStage, Target: TargetSelf, Stat: StatCrit, Stages: 1}}},
	12: {ID: 12, Name: "Toxic Spray", Accuracy: 90, Category: CategoryStatus, Element: ElementGrass, MaxPP: 10, EffectChance: 100, Effects: []Effect{{Kind: EffectAilment, Target: TargetOpponent, Ailment: AilmentPoison}}},
	13: {ID: 13, Name: "Lullaby", Accuracy: 55, Category: CategoryStatus, Element: ElementNormal, MaxPP: 15, EffectChance: 100, Effects: []Effect{{Kind: EffectAilment, Target: TargetOpponent, Ailment: AilmentSleep}}},
	14: {ID: 14, Name: "Recover", Accuracy: AlwaysHitAccuracy, Category: CategoryStatus, Element: ElementNormal, MaxPP: 10, EffectChance: 100, Effects: []Effect{{Kind: EffectHeal, Target: TargetSelf, Percent: 50}}},
	15: {ID: 15, Name: "Rain Dance", Accuracy: AlwaysHitAccuracy, Category: CategoryStatus, Element: ElementWater, MaxPP: 5, EffectChance: 100, Effects: []Effect{{Kind: EffectFieldChange, Slot: FieldSlotWeather, Value: WeatherRain}}},
	16: {ID: 16, Name: "Sunny Day", Accuracy: AlwaysHitAccuracy, Category: CategoryStatus, Element: ElementFire, MaxPP: 5, EffectChance: 100, Effects: []Effect{{Kind: EffectFieldChange, Slot: FieldSlotWeather, Value: WeatherSunny}}},
	17: {ID: 17, Name: "Double-Edge", Power: 100, Accuracy: 100, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 10, EffectChance: 100, Effects: []Effect{{Kind: EffectRecoil, Target: TargetSelf, Percent: 12}}},
	18: {ID: 18, Name: "Flail", Power: 50, Accuracy: 100, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 15, EffectChance: 100, ScalesWithLostHP: true},
	19: {ID: 19, Name: "Scary Face", Accuracy: 100, Category: CategoryStatus, Element: ElementNormal, MaxPP: 10, EffectChance: 100, Effects: []Effect{{Kind: EffectStatStage, Target: TargetOpponent, Stat: StatAgility, Stages: -2}}},
	20: {ID: 20, Name: "Hyper Fang", Power: 80, Accuracy: 90, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 15, EffectChance: 10, Effects: []Effect{{Kind: EffectVolatile, Target: TargetOpponent, Volatile: VolatileFlinch, Turns: 1}}},
	21: {ID: 21, Name: "Supersonic", Accuracy: 55, Category: CategoryStatus, Element: ElementNormal, MaxPP: 20, EffectChance: 100, Effects: []Effect{{Kind: EffectVolatile, Target: TargetOpponent, Volatile: VolatileConfusion, Turns: 3}}},
	22: {ID: 22, Name: "Mud Shot", Power: 55, Accuracy: 95, Category: CategorySpecial, Element: ElementGround, MaxPP: 15, EffectChance: 100, Effects: []Effect{{Kind: EffectStatStage, Target: TargetOpponent, Stat: StatAgility, Stages: -1}}},
	23: {ID: 23, Name: "Gust", Power: 40, Accuracy: 100, Category: CategorySpecial, Element: ElementFlying, MaxPP: 35, EffectChance: 100},
	24: {ID: 24, Name: "Flame Burst", Power: 70, Accuracy: 100, Category: CategorySpecial, Element: ElementFire, MaxPP: 15, EffectChance: 10, Effects: []Effect{{Kind: EffectAilment, Target: TargetOpponent, Ailment: AilmentBurn}}},
	25: {ID: 25, Name: "Aqua Tail", Power: 90, Accuracy: 90, Category: CategoryPhysical, Element: ElementWater, MaxPP: 10, EffectChance: 100},
	26: {ID: 26, Name: "Leaf Blade", Power: 90, Accuracy: 100, Category: CategoryPhysical, Element: ElementGrass, MaxPP: 15, EffectChance: 100},
	27: {ID: 27, Name: "Thunder Fang", Power: 65, Accuracy: 95, Category: CategoryPhysical, Element: ElementElectric, MaxPP: 15, EffectChance: 10, Effects: []Effect{{Kind: EffectVolatile, Target: TargetOpponent, Volatile: VolatileFlinch, Turns: 1}}},

	MoveIDStruggle: {ID: MoveIDStruggle, Name: "Struggle", Power: 35, Accuracy: AlwaysHitAccuracy, Category: CategoryPhysical, Element: ElementNormal, MaxPP: 0, EffectChance: 100, Effects: []Effect{{Kind: EffectRecoil, Target: TargetSelf, Percent: 12}}},
}

// MoveByID returns the catalog entry for a move id.
func MoveByID(id int) (Move, bool) {
	m, ok := moves[id]
	return m, ok
}
