// Package catalog holds the immutable battle content: move definitions,
// the type-effectiveness chart, stat-stage multipliers, status-ailment
// metadata and per-species base stats. Everything here is read-only and
// safe to share across connections without coordination.
package catalog

// Element is the elemental type of a move or species.
type Element string

const (
	ElementNormal   Element = "normal"
	ElementFire     Element = "fire"
	ElementWater    Element = "water"
	ElementGrass    Element = "grass"
	ElementElectric Element = "electric"
	ElementGround   Element = "ground"
	ElementFlying   Element = "flying"
)

// Category splits moves into physical, special and status.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Stats is the immutable stat snapshot captured at room-join time.
// It is never mutated during a battle; only the combat state is.
type Stats struct {
	Strength     int `json:"strength"`
	Defense      int `json:"defense"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Luck         int `json:"luck"`
	MaxHealth    int `json:"max_health"`
}

// StatName identifies a stage-modifiable stat.
type StatName string

const (
	StatStrength     StatName = "strength"
	StatDefense      StatName = "defense"
	StatAgility      StatName = "agility"
	StatIntelligence StatName = "intelligence"
	StatAccuracy     StatName = "accuracy"
	StatEvasion      StatName = "evasion"
	StatCrit         StatName = "crit"
)

// Volatile flags tracked on the combat state. Flinch and protect last a
// single turn; confusion carries a countdown over several turns.
const (
	VolatileFlinch    = "flinch"
	VolatileProtect   = "protect"
	VolatileConfusion = "confusion"
)

// Weather values usable in the shared field-effect slot.
const (
	WeatherNone  = ""
	WeatherSunny = "sunny"
	WeatherRain  = "rain"
)

// FieldSlotWeather is the field-effect slot written by weather moves.
const FieldSlotWeather = "weather"

// WeatherDamageScale returns the elemental damage multiplier applied by the
// current weather. Sun boosts fire and dampens water; rain does the reverse.
func WeatherDamageScale(weather string, elem Element) float64 {
	switch weather {
	case WeatherSunny:
		if elem == ElementFire {
			return 1.5
		}
		if elem == ElementWater {
			return 0.5
		}
	case WeatherRain:
		if elem == ElementWater {
			return 1.5
		}
		if elem == ElementFire {
			return 0.5
		}
	}
	return 1.0
}
