package catalog

// SkillUnlock marks the trainer level at which a species learns a move.
type SkillUnlock struct {
	Level  int
	MoveID int
}

// Species is a per-species catalog entry: elemental type, level-1 base
// stats and the skill-unlock table.
type Species struct {
	Name      string
	Element   Element
	BaseStats Stats
	Learnset  []SkillUnlock
}

var species = map[string]Species{
	"flarepup": {
		Name:      "flarepup",
		Element:   ElementFire,
		BaseStats: Stats{Strength: 52, Defense: 43, Agility: 65, Intelligence: 50, Luck: 10, MaxHealth: 39},
		Learnset: []SkillUnlock{
			{Level: 1, MoveID: 1}, {Level: 1, MoveID: 8},
			{Level: 3, MoveID: 3}, {Level: 7, MoveID: 7},
			{Level: 10, MoveID: 16}, {Level: 13, MoveID: 2},
			{Level: 17, MoveID: 24}, {Level: 22, MoveID: 27},
		},
	},
	"tidetoad": {
		Name:      "tidetoad",
		Element:   ElementWater,
		BaseStats: Stats{Strength: 48, Defense: 65, Agility: 43, Intelligence: 50, Luck: 10, MaxHealth: 44},
		Learnset: []SkillUnlock{
			{Level: 1, MoveID: 1}, {Level: 1, MoveID: 9},
			{Level: 3, MoveID: 4}, {Level: 7, MoveID: 2},
			{Level: 10, MoveID: 15}, {Level: 13, MoveID: 21},
			{Level: 17, MoveID: 25}, {Level: 22, MoveID: 14},
		},
	},
	"leafkit": {
		Name:      "leafkit",
		Element:   ElementGrass,
		BaseStats: Stats{Strength: 49, Defense: 49, Agility: 45, Intelligence: 65, Luck: 10, MaxHealth: 45},
		Learnset: []SkillUnlock{
			{Level: 1, MoveID: 1}, {Level: 1, MoveID: 8},
			{Level: 3, MoveID: 5}, {Level: 7, MoveID: 12},
			{Level: 10, MoveID: 10}, {Level: 13, MoveID: 13},
			{Level: 17, MoveID: 26}, {Level: 22, MoveID: 14},
		},
	},
	"voltmouse": {
		Name:      "voltmouse",
		Element:   ElementElectric,
		BaseStats: Stats{Strength: 55, Defense: 40, Agility: 90, Intelligence: 50, Luck: 12, MaxHealth: 35},
		Learnset: []SkillUnlock{
			{Level: 1, MoveID: 1}, {Level: 1, MoveID: 10},
			{Level: 3, MoveID: 6}, {Level: 7, MoveID: 7},
			{Level: 10, MoveID: 19}, {Level: 13, MoveID: 11},
			{Level: 17, MoveID: 27}, {Level: 22, MoveID: 18},
		},
	},
	"pebblebear": {
		Name:      "pebblebear",
		Element:   ElementGround,
		BaseStats: Stats{Strength: 70, Defense: 60, Agility: 30, Intelligence: 35, Luck: 8, MaxHealth: 55},
		Learnset: []SkillUnlock{
			{Level: 1, MoveID: 1}, {Level: 1, MoveID: 9},
			{Level: 3, MoveID: 22}, {Level: 7, MoveID: 19},
			{Level: 10, MoveID: 2}, {Level: 13, MoveID: 17},
			{Level: 17, MoveID: 18}, {Level: 22, MoveID: 20},
		},
	},
}

// SpeciesByName returns the catalog entry for a species tag.
func SpeciesByName(name string) (Species, bool) {
	s, ok := species[name]
	return s, ok
}

// SpeciesNames lists every known species tag.
func SpeciesNames() []string {
	out := make([]string, 0, len(species))
	for name := range species {
		out = append(out, name)
	}
	return out
}

// LearnedMoves returns the move ids a species has unlocked at the given
// trainer level, in unlock order.
func LearnedMoves(speciesName string, level int) []int {
	s, ok := species[speciesName]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(s.Learnset))
	for _, u := range s.Learnset {
		if u.Level <= level {
			out = append(out, u.MoveID)
		}
	}
	return out
}
