package storage

import "errors"

var (
	ErrPetNotFound     = errors.New("pet not found")
	ErrTrainerNotFound = errors.New("trainer not found")
)

// Repository is the persistence surface the battle core and the read-only
// API consume.
type Repository interface {
	// GetOrCreatePet returns the trainer's pet, creating a starter pet
	// (and the trainer profile) on first contact.
	GetOrCreatePet(userID string) (*Pet, error)

	// SavePetHealth writes back a pet's remaining health after a battle.
	SavePetHealth(userID string, currentHP int) error

	// ApplyBattleOutcome applies experience, level-ups and win/loss/draw
	// counters for a finished battle and returns the per-user summaries.
	// Bot combatants are skipped. A draw is expressed with draw=true, in
	// which case winnerID/loserID are just the two participants.
	ApplyBattleOutcome(winnerID, loserID string, draw bool) (map[string]*RewardResult, error)

	// StatsByUser returns a trainer profile for the stats endpoint.
	StatsByUser(userID string) (*Trainer, error)

	// TopTrainers returns the leaderboard ordered by wins.
	TopTrainers(limit int) ([]Trainer, error)
}
