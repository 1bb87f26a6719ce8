package storage

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// CharacterSnapshot is the immutable view of a combatant captured at room
// creation: stat line, species, learned moves and persisted health.
type CharacterSnapshot struct {
	PetName   string
	Species   string
	Level     int
	Stats     catalog.Stats
	Learned   []int
	CurrentHP int
}

// CharacterProvider resolves combatant snapshots for the battle driver.
// Concurrent lookups for the same user (both sides of matchmaking firing
// at once) are deduplicated through a singleflight group.
type CharacterProvider struct {
	repo  Repository
	group singleflight.Group
}

func NewCharacterProvider(repo Repository) *CharacterProvider {
	return &CharacterProvider{repo: repo}
}

// Snapshot loads (or lazily creates) the user's pet and derives the
// snapshot used to seed a battle room.
func (p *CharacterProvider) Snapshot(ctx context.Context, userID string) (*CharacterSnapshot, error) {
	v, err, _ := p.group.Do(userID, func() (interface{}, error) {
		pet, err := p.repo.GetOrCreatePet(userID)
		if err != nil {
			return nil, fmt.Errorf("character snapshot for %s: %w", userID, err)
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
			CurrentHP: pet.CurrentHealth,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CharacterSnapshot), nil
}
