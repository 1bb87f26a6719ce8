package storage

import (
	"math/rand"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// BotSnapshot builds an ephemeral scripted opponent of roughly the given
// level. The pet uses the same growth curve as real pets but is never
// persisted; it exists only inside the room aggregate.
func BotSnapshot(rng *rand.Rand, level int) *CharacterSnapshot {
	if level < 1 {
		level = 1
	}
	names := catalog.SpeciesNames()
	sp, _ := catalog.SpeciesByName(names[rng.Intn(len(names))])
	pet := &Pet{
		Name:         "Wild " + sp.Name,
		Species:      sp.Name,
		Level:        1,
		Strength:     sp.BaseStats.Strength,
		Defense:      sp.BaseStats.Defense,
		Agility:      sp.BaseStats.Agility,
		Intelligence: sp.BaseStats.Intelligence,
		Luck:         sp.BaseStats.Luck,
		MaxHealth:    sp.BaseStats.MaxHealth,
	}
	for pet.Level < level {
		growPet(pet)
	}
	return &CharacterSnapshot{
		PetName: pet.Name,
		Species: pet.Species,
		Level:   pet.Level,
		Stats: catalog.Stats{
			Strength:     pet.Strength,
			Defense:      pet.Defense,
			Agility:      pet.Agility,
			Intelligence: pet.Intelligence,
			Luck:         pet.Luck,
			MaxHealth:    pet.MaxHealth,
		},
		Learned:   catalog.LearnedMoves(pet.Species, pet.Level),
		CurrentHP: pet.MaxHealth,
	}
}
